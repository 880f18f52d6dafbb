// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package shellutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/jongio/session-env/env"
)

// Formatter renders variables for a dialect.
type Formatter struct {
	// Fish quotes names and values for DialectFish.
	Fish Quoter
}

// NewFormatter returns a Formatter that shells out to fish for fish quoting.
func NewFormatter() *Formatter {
	return &Formatter{Fish: FishQuoter{}}
}

// Line returns one shell statement assigning value to name.
// The statement has no trailing newline.
func (f *Formatter) Line(ctx context.Context, dialect Dialect, name, value string) (string, error) {
	switch dialect {
	case DialectPosix:
		return fmt.Sprintf("export %s=%s", PosixQuote(name), PosixQuote(value)), nil
	case DialectFish:
		if f.Fish == nil {
			return "", fmt.Errorf("no fish quoter configured")
		}
		quotedName, err := f.Fish.Quote(ctx, name)
		if err != nil {
			return "", err
		}
		quotedValue, err := f.Fish.Quote(ctx, value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("set -x %s %s", quotedName, quotedValue), nil
	case DialectJSON:
		return "", fmt.Errorf("dialect %s does not render single lines", dialect)
	default:
		return "", fmt.Errorf("unknown dialect %q", string(dialect))
	}
}

// Render writes vars to w in dialect, in slice order.
// Nothing is written unless every variable formatted successfully.
func (f *Formatter) Render(ctx context.Context, w io.Writer, dialect Dialect, vars []env.Var) error {
	var buf bytes.Buffer

	switch dialect {
	case DialectPosix, DialectFish:
		for _, v := range vars {
			line, err := f.Line(ctx, dialect, v.Name, v.Value)
			if err != nil {
				return fmt.Errorf("failed to format %s: %w", v.Name, err)
			}
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	case DialectJSON:
		data, err := marshalOrdered(vars)
		if err != nil {
			return err
		}
		buf.Write(data)
		buf.WriteByte('\n')
	default:
		return fmt.Errorf("unknown dialect %q", string(dialect))
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// marshalOrdered encodes vars as a JSON object keeping their order.
func marshalOrdered(vars []env.Var) ([]byte, error) {
	om := orderedmap.New[string, string]()
	for _, v := range vars {
		om.Set(v.Name, v.Value)
	}

	data, err := json.MarshalIndent(om, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return data, nil
}
