package editor

import (
	"strconv"

	"go.trai.ch/depedit/internal/core/domain"
	"go.trai.ch/depedit/internal/tomldoc"
	"go.trai.ch/zerr"
)

// TypedValue converts a command-line value into a TOML value of the given type.
func TypedValue(typ domain.ValueType, raw string) (*tomldoc.Value, error) {
	switch typ {
	case domain.ValueString:
		return tomldoc.StringValue(raw), nil
	case domain.ValueInteger:
		i, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, invalidValue(typ, raw)
		}
		return tomldoc.IntegerValue(i), nil
	case domain.ValueFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, invalidValue(typ, raw)
		}
		return tomldoc.FloatValue(f), nil
	case domain.ValueBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, invalidValue(typ, raw)
		}
		return tomldoc.BoolValue(b), nil
	default:
		return nil, invalidValue(typ, raw)
	}
}

func invalidValue(typ domain.ValueType, raw string) error {
	err := zerr.Wrap(domain.ErrInvalidValueType, "value does not parse as "+typ.String())
	return zerr.With(err, "value", raw)
}
