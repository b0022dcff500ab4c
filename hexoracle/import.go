package hexoracle

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"

	"github.com/hexmobile/mobile-verifier/common/types"
	"github.com/hexmobile/mobile-verifier/sql"
	"github.com/hexmobile/mobile-verifier/sql/hexes"
)

const schemaFile = "hexoracle.schema.json"

//go:embed schema.json
var schema string

// Document is the file format of oracle data.
type Document struct {
	Assignments    []Assignment    `json:"assignments"`
	Boosts         []Boost         `json:"boosts"`
	VerifiedRadios []VerifiedRadio `json:"verified_radios"`
}

type Assignment struct {
	Hex       types.Hex        `json:"hex"`
	Footfall  types.Assignment `json:"footfall"`
	Landtype  types.Assignment `json:"landtype"`
	Urbanized types.Assignment `json:"urbanized"`
}

type Boost struct {
	Hex        types.Hex `json:"hex"`
	Multiplier uint32    `json:"multiplier"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
}

type VerifiedRadio struct {
	RadioID    string    `json:"radio_id"`
	VerifiedAt time.Time `json:"verified_at"`
}

func validateSchema(data []byte) error {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaFile, bytes.NewReader([]byte(schema))); err != nil {
		return fmt.Errorf("add hex oracle json schema: %w", err)
	}
	sch, err := compiler.Compile(schemaFile)
	if err != nil {
		return fmt.Errorf("compile hex oracle json schema: %w", err)
	}
	var v any
	if err = json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal hex oracle data: %w", err)
	}
	if err = sch.Validate(v); err != nil {
		return fmt.Errorf("validate hex oracle data: %w", err)
	}
	return nil
}

// Parse validates data against the schema and decodes it.
func Parse(data []byte) (*Document, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode hex oracle data: %w", err)
	}
	for _, b := range doc.Boosts {
		if !b.End.After(b.Start) {
			return nil, fmt.Errorf("boost of %s ends at %v before it starts at %v", b.Hex, b.End, b.Start)
		}
	}
	return &doc, nil
}

// Import loads the oracle document at path into the database in a single transaction.
func Import(ctx context.Context, db *sql.Database, fs afero.Fs, path string) (*Document, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read hex oracle file %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, a := range doc.Assignments {
			if err := hexes.SetAssignments(tx, a.Hex, types.Assignments{
				Footfall:  a.Footfall,
				Landtype:  a.Landtype,
				Urbanized: a.Urbanized,
			}); err != nil {
				return err
			}
		}
		for _, b := range doc.Boosts {
			if err := hexes.AddBoost(tx, hexes.Boost{
				Hex:        b.Hex,
				Multiplier: b.Multiplier,
				Start:      b.Start,
				End:        b.End,
			}); err != nil {
				return err
			}
		}
		for _, r := range doc.VerifiedRadios {
			if err := hexes.SetVerified(tx, r.RadioID, r.VerifiedAt); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("import hex oracle data: %w", err)
	}
	return doc, nil
}
