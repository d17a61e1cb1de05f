package toolsets

import (
	"time"

	"github.com/mwiater/travvy/internal/tools"
)

const (
	datePattern    = `^\d{4}-\d{2}-\d{2}$`
	dateLayout     = "2006-01-02"
	airportPattern = `^[A-Za-z]{3}$`
	stationPattern = `^[A-Za-z]{2,5}$`
	trainPattern   = `^[0-9]{4,5}$`
)

func str(name, desc string) tools.Param {
	return tools.Param{Name: name, Type: "string", Description: desc}
}

func number(name, desc string, lo, hi float64) tools.Param {
	return tools.Param{Name: name, Type: "number", Description: desc, Minimum: tools.Float(lo), Maximum: tools.Float(hi)}
}

func integer(name, desc string, lo, hi float64, def int) tools.Param {
	p := tools.Param{Name: name, Type: "integer", Description: desc, Minimum: tools.Float(lo), Default: def}
	if hi > lo {
		p.Maximum = tools.Float(hi)
	}
	return p
}

func required(p tools.Param) tools.Param {
	p.Required = true
	return p
}

func pattern(p tools.Param, re string) tools.Param {
	p.Pattern = re
	return p
}

func oneOf(p tools.Param, def string, values ...string) tools.Param {
	p.Enum = values
	if def != "" {
		p.Default = def
	}
	return p
}

func minLength(p tools.Param, n int) tools.Param {
	p.MinLength = tools.Int(n)
	return p
}

// date parses a YYYY-MM-DD argument that already matched datePattern.
func date(args tools.Args, key string) (time.Time, error) {
	raw := args.String(key, "")
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, tools.Validationf("%s must be a valid date in YYYY-MM-DD format, got '%s'", key, raw)
	}
	return t, nil
}
