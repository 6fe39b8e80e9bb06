// Command gendecode reads an ISA description (a simplified stand-in for the
// AArch64 XML reference manual) and emits a Go source file defining the
// decode table's flat instruction array, in the shape baldecodetable
// commits. The core never runs this tool; it consumes gendecode's output
// as read-only static data.
package main

import (
	"encoding/xml"
	"flag"
	"fmt"
	"os"
	"text/template"
)

// isaFile is the XML document shape gendecode parses.
type isaFile struct {
	XMLName      xml.Name         `xml:"isa"`
	Instructions []instructionXML `xml:"instruction"`
}

type instructionXML struct {
	Name     string       `xml:"name,attr"`
	Mask     string       `xml:"mask,attr"`
	Expected string       `xml:"expected,attr"`
	IROpcode string       `xml:"ir_opcode,attr"`
	Operands []operandXML `xml:"operand"`
}

type operandXML struct {
	Type        string `xml:"type,attr"`
	BitPosition int    `xml:"bit_position,attr"`
	BitWidth    int    `xml:"bit_width,attr"`
}

// tableEntry is the data handed to the output template, one per
// <instruction> element.
type tableEntry struct {
	Name     string
	Mask     string
	Expected string
	IROpcode string
	Operands []operandXML
}

const outputTemplate = `// Code generated by tools/gendecode from {{.SourcePath}}. DO NOT EDIT.
package {{.Package}}

import (
	"github.com/poundemu/ballistic/baldecoder"
	"github.com/poundemu/ballistic/balir"
)

var instructions = []baldecoder.Metadata{
{{range .Entries}}	{
		Name:     {{printf "%q" .Name}},
		Mask:     {{.Mask}},
		Expected: {{.Expected}},
		IROpcode: uint16(balir.Op{{.IROpcode}}),
		Operands: [4]baldecoder.OperandField{
{{range .Operands}}			{Type: baldecoder.Operand{{.Type}}, BitPosition: {{.BitPosition}}, BitWidth: {{.BitWidth}}},
{{end}}		},
	},
{{end}}}

var Table = baldecoder.BuildTable(instructions)
`

func main() {
	var (
		inputPath  = flag.String("isa", "", "Path to an ISA XML description")
		outputPath = flag.String("out", "", "Path to write the generated Go source to")
		pkgName    = flag.String("package", "baldecodetable", "Package name for the generated file")
	)
	flag.Parse()

	if *inputPath == "" || *outputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: gendecode -isa <file.xml> -out <file.go>")
		os.Exit(2)
	}

	if err := run(*inputPath, *outputPath, *pkgName); err != nil {
		fmt.Fprintf(os.Stderr, "gendecode: %v\n", err)
		os.Exit(1)
	}
}

func run(inputPath, outputPath, pkgName string) error {
	raw, err := os.ReadFile(inputPath) // #nosec G304 -- operator-supplied ISA description
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	var doc isaFile
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", inputPath, err)
	}

	entries := make([]tableEntry, 0, len(doc.Instructions))
	for _, inst := range doc.Instructions {
		if err := validate(inst); err != nil {
			return fmt.Errorf("instruction %s: %w", inst.Name, err)
		}
		operands := make([]operandXML, len(inst.Operands))
		for i, op := range inst.Operands {
			op.Type = toCamelCase(op.Type)
			operands[i] = op
		}
		entries = append(entries, tableEntry{
			Name:     inst.Name,
			Mask:     inst.Mask,
			Expected: inst.Expected,
			IROpcode: toCamelCase(inst.IROpcode),
			Operands: operands,
		})
	}

	tmpl, err := template.New("gendecode").Parse(outputTemplate)
	if err != nil {
		return fmt.Errorf("parsing output template: %w", err)
	}

	out, err := os.Create(outputPath) // #nosec G304 -- operator-supplied output path
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer out.Close()

	return tmpl.Execute(out, struct {
		SourcePath string
		Package    string
		Entries    []tableEntry
	}{SourcePath: inputPath, Package: pkgName, Entries: entries})
}

// validate checks the one precondition BuildTable actually relies on:
// expected must not set any bit outside mask (such an encoding could never
// match any instruction word, since instruction&mask can never produce a
// bit mask doesn't cover). A mask is free to leave some of the decode
// table's top 11 bucketing bits unconstrained — MOV-wide's hw selector, a
// shift-type field, or an immediate spilling into the major-opcode byte all
// do this legitimately — baldecoder.BuildTable replicates such a candidate
// into every bucket its free top bits are consistent with.
func validate(inst instructionXML) error {
	var mask, expected uint32
	if _, err := fmt.Sscanf(inst.Mask, "0x%x", &mask); err != nil {
		return fmt.Errorf("invalid mask %q: %w", inst.Mask, err)
	}
	if _, err := fmt.Sscanf(inst.Expected, "0x%x", &expected); err != nil {
		return fmt.Errorf("invalid expected %q: %w", inst.Expected, err)
	}
	if expected&^mask != 0 {
		return fmt.Errorf("expected 0x%08X has bits set outside mask 0x%08X", expected, mask)
	}
	return nil
}

// toCamelCase converts an ISA opcode name like "CONST" or "OR_NOT" to the
// balir.Opcode identifier suffix ("Const", "OrNot").
func toCamelCase(name string) string {
	out := make([]byte, 0, len(name))
	upperNext := true
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			out = append(out, upper(c))
			upperNext = false
		} else {
			out = append(out, lower(c))
		}
	}
	return string(out)
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}
