// Command converter performs the one-time spreadsheet-to-JSON conversion
// that produces the reference-data document consumed by the service. Each
// spreadsheet row carries sector, responsible person, user and equipment
// columns; the first non-empty responsible seen for a sector wins and
// equipment identifiers are de-duplicated.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/chamado-tracker/internal/domain"
)

const (
	colSector      = "SETOR"
	colResponsible = "RESPONSÁVEL"
	colUser        = "USUÁRIO"
	colEquipment   = "EQUIPAMENTO"
)

func main() {
	input := pflag.StringP("input", "i", "chamados2.xlsm", "source workbook")
	output := pflag.StringP("output", "o", "data/dados_base.json", "reference data document to write")
	sheetIndex := pflag.Int("sheet", 1, "workbook sheet index to read")
	pflag.Parse()

	if err := run(*input, *output, *sheetIndex); err != nil {
		fmt.Fprintln(os.Stderr, "converter:", err)
		os.Exit(1)
	}
}

func run(input, output string, sheetIndex int) error {
	wb, err := excelize.OpenFile(input)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if sheetIndex < 0 || sheetIndex >= len(sheets) {
		return fmt.Errorf("sheet index %d out of range (%d sheets)", sheetIndex, len(sheets))
	}
	rows, err := wb.GetRows(sheets[sheetIndex])
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheets[sheetIndex], err)
	}

	data, err := buildReferenceData(rows)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	fmt.Printf("wrote %s: %d sectors, %d equipment, %d user rows\n",
		output, len(data.SectorResponsible), len(data.Equipment), len(data.UserSectors))
	return nil
}

// buildReferenceData folds the tabular rows into the reference document.
// The first row is the header.
func buildReferenceData(rows [][]string) (domain.ReferenceData, error) {
	if len(rows) == 0 {
		return domain.ReferenceData{}, fmt.Errorf("sheet is empty")
	}
	idx := map[string]int{}
	for i, name := range rows[0] {
		idx[name] = i
	}
	for _, required := range []string{colSector, colResponsible, colUser, colEquipment} {
		if _, ok := idx[required]; !ok {
			return domain.ReferenceData{}, fmt.Errorf("missing column %q", required)
		}
	}

	data := domain.ReferenceData{
		SectorResponsible: map[string]string{},
	}
	seenEquipment := map[string]bool{}
	for _, row := range rows[1:] {
		sector := cell(row, idx[colSector])
		responsible := cell(row, idx[colResponsible])
		user := cell(row, idx[colUser])
		equipment := cell(row, idx[colEquipment])

		if sector != "" && responsible != "" {
			if _, ok := data.SectorResponsible[sector]; !ok {
				data.SectorResponsible[sector] = responsible
			}
		}
		if user != "" && sector != "" {
			data.UserSectors = append(data.UserSectors, domain.UserSector{User: user, Sector: sector})
		}
		if equipment != "" && !seenEquipment[equipment] {
			seenEquipment[equipment] = true
			data.Equipment = append(data.Equipment, equipment)
		}
	}
	return data, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
