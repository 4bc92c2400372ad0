package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/enclosure/pkg/builder"
	"github.com/chazu/enclosure/pkg/kernel"
	"github.com/chazu/enclosure/pkg/param"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms enclosure script source before passing it
// to zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: inner-width -> inner_width
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpConfig wraps a param.Config so it can be returned from `enclosure`
// and consumed by `build`.
type sexpConfig struct {
	cfg param.Config
}

func (c *sexpConfig) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(enclosure %.1fx%.1fx%.1f)", c.cfg.InnerWidth, c.cfg.InnerLength, c.cfg.InnerHeight)
}
func (c *sexpConfig) Type() *zygo.RegisteredType { return nil }

// sexpBuild wraps a finished build so scripts can hold a reference to it.
type sexpBuild struct {
	res *builder.Result
}

func (b *sexpBuild) SexpString(ps *zygo.PrintState) string {
	p := b.res.Params
	return fmt.Sprintf("(build %.1fx%.1fx%.1f)", p.OuterWidth(), p.OuterLength(), p.OuterHeight())
}
func (b *sexpBuild) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value, treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toBool extracts a bool from a Sexp.
func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_inside-box) and plain strings
// ("inside-box").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toPlacement converts a keyword or string to a param.ScrewPlacement.
func toPlacement(s zygo.Sexp) (param.ScrewPlacement, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected placement keyword (:inside-box, :outside-box): %w", err)
	}
	switch name {
	case "inside-box":
		return param.ScrewInsideBox, nil
	case "outside-box":
		return param.ScrewOutsideBox, nil
	}
	return 0, fmt.Errorf("invalid placement %q, expected inside-box or outside-box", name)
}

// toFastening converts a keyword or string to a param.Fastening.
func toFastening(s zygo.Sexp) (param.Fastening, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected fastening keyword (:wood-screw, :square-nut): %w", err)
	}
	switch name {
	case "wood-screw":
		return param.FasteningWoodScrew, nil
	case "square-nut":
		return param.FasteningSquareNut, nil
	}
	return 0, fmt.Errorf("invalid fastening %q, expected wood-screw or square-nut", name)
}

// toNutWorkaround converts a keyword or string to a param.NutWorkaround.
func toNutWorkaround(s zygo.Sexp) (param.NutWorkaround, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected workaround keyword (:cut-reliefs, :add-ceiling): %w", err)
	}
	switch name {
	case "cut-reliefs":
		return param.NutCutReliefs, nil
	case "add-ceiling":
		return param.NutAddCeiling, nil
	}
	return 0, fmt.Errorf("invalid nut workaround %q, expected cut-reliefs or add-ceiling", name)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the enclosure DSL builtins into a zygomys
// environment. The `build` builtin writes its output into out, so the
// last build of a script is what Evaluate returns.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are converted to recognizable
// string literals.
func registerBuiltins(env *zygo.Zlisp, k kernel.Kernel, out *Design) {

	// -----------------------------------------------------------------------
	// (enclosure :inner-width 31 :inner-length 71 :inner-height 16
	//            :screw-placement :outside-box :middle-width-screws true)
	// -----------------------------------------------------------------------
	env.AddFunction("enclosure", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		cfg := param.DefaultConfig()

		floats := map[string]*float64{
			"inner-width":                &cfg.InnerWidth,
			"inner-length":               &cfg.InnerLength,
			"inner-height":               &cfg.InnerHeight,
			"split-height":               &cfg.SplitHeight,
			"screw-hole-diameter":        &cfg.ScrewHoleDiameter,
			"screw-head-diameter":        &cfg.ScrewHeadDiameter,
			"screw-total-length":         &cfg.ScrewTotalLength,
			"square-nut-width":           &cfg.SquareNutWidth,
			"square-nut-height":          &cfg.SquareNutHeight,
			"gasket-height":              &cfg.GasketHeight,
			"gasket-width":               &cfg.GasketWidth,
			"gasket-spacing":             &cfg.GasketSpacing,
			"gasket-compression":         &cfg.GasketCompression,
			"mount-holder-length":        &cfg.MountHolderLength,
			"mount-holder-hole-diameter": &cfg.MountHolderHoleDiameter,
			"mount-holder-head-diameter": &cfg.MountHolderHeadDiameter,
			"layer-height":               &cfg.LayerHeight,
		}
		bools := map[string]*bool{
			"actual-inner-width":   &cfg.ActualInnerWidth,
			"actual-inner-length":  &cfg.ActualInnerLength,
			"corner-screws":        &cfg.CornerScrews,
			"middle-length-screws": &cfg.MiddleLengthScrews,
			"middle-width-screws":  &cfg.MiddleWidthScrews,
			"mount-holders":        &cfg.MountHolders,
			"mount-holder-fillet":  &cfg.MountHolderFillet,
			"fillet-top":           &cfg.FilletTop,
			"fillet-bottom":        &cfg.FilletBottom,
		}

		for key, v := range pa.kw {
			if dst, ok := floats[key]; ok {
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("enclosure: %s: %w", key, err)
				}
				*dst = f
				continue
			}
			if dst, ok := bools[key]; ok {
				b, err := toBool(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("enclosure: %s: %w", key, err)
				}
				*dst = b
				continue
			}
			switch key {
			case "screw-placement":
				p, err := toPlacement(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("enclosure: screw-placement: %w", err)
				}
				cfg.Placement = p
			case "fastening":
				f, err := toFastening(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("enclosure: fastening: %w", err)
				}
				cfg.Fastening = f
			case "nut-workaround":
				w, err := toNutWorkaround(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("enclosure: nut-workaround: %w", err)
				}
				cfg.NutWorkaround = w
			default:
				return zygo.SexpNull, fmt.Errorf("enclosure: unknown parameter :%s", key)
			}
		}

		return &sexpConfig{cfg: cfg}, nil
	})

	// -----------------------------------------------------------------------
	// (build (enclosure ...))
	// -----------------------------------------------------------------------
	env.AddFunction("build", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("build requires exactly one enclosure expression")
		}
		sc, ok := args[0].(*sexpConfig)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("build: expected enclosure, got %T (%s)", args[0], args[0].SexpString(nil))
		}

		res, err := builder.Build(k, sc.cfg)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("build: %w", err)
		}

		out.Result = res
		return &sexpBuild{res: res}, nil
	})
}
