package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// emit writes v in the selected format. text renders the human form; toon may
// be nil for results that have no TOON encoding.
func (a *app) emit(v any, text func(w io.Writer) error, toon func() string) error {
	switch a.format {
	case formatJSON:
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatTOON:
		if toon == nil {
			return fmt.Errorf("toon output is not available for this command")
		}
		_, err := fmt.Fprintln(a.stdout, toon())
		return err
	}
	return text(a.stdout)
}
