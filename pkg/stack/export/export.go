// Package export serializes simulation data into files for solvers.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yaptide/chipstack/config"
	"github.com/yaptide/chipstack/format"
	"github.com/yaptide/chipstack/pkg/stack/simulation"
)

var log = config.NamedLogger("export")

const (
	columnWidth = 12
	nameWidth   = 24
)

// Files returns content of exported files keyed by file name.
func Files(data simulation.Data) (map[string]string, error) {
	files := map[string]string{}
	for fileName, serializeFunc := range map[string]func() (string, error){
		data.SimulationName + ".json":        func() (string, error) { return indented(data) },
		data.SimulationName + "_layers.txt": func() (string, error) { return LayerTable(data), nil },
	} {
		content, err := serializeFunc()
		if err != nil {
			return nil, fmt.Errorf("[export] %s: %s", fileName, err)
		}
		files[fileName] = content
	}
	log.Debugf("exported %s into %d files", data.SimulationName, len(files))
	return files, nil
}

// CrossSectionFiles returns content of exported cross-section files.
func CrossSectionFiles(data simulation.CrossSectionData) (map[string]string, error) {
	content, err := indented(data)
	if err != nil {
		return nil, fmt.Errorf("[export] %s: %s", data.SimulationName, err)
	}
	return map[string]string{data.SimulationName + "_xsection.json": content}, nil
}

func indented(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// LayerTable is a human readable summary of finalized layers in the
// order they were produced.
func LayerTable(data simulation.Data) string {
	var sb strings.Builder
	header := []string{"z", "thickness", "layer"}
	sb.WriteString(format.PadRight("name", nameWidth))
	for _, h := range header {
		sb.WriteString(strings.Repeat(" ", columnWidth-len(h)) + h)
	}
	sb.WriteString("  material\n")

	for _, name := range data.LayerOrder {
		l := data.Layers[name]
		sb.WriteString(format.PadRight(name, nameWidth))
		sb.WriteString(format.FloatToFixedWidthString(l.Z, columnWidth))
		sb.WriteString(format.FloatToFixedWidthString(l.Thickness, columnWidth))
		if l.Layer != nil {
			sb.WriteString(format.FloatToFixedWidthString(float64(*l.Layer), columnWidth))
		} else {
			sb.WriteString(strings.Repeat(" ", columnWidth-1) + "-")
		}
		sb.WriteString("  " + l.Material)
		if len(l.Subtract) > 0 {
			sb.WriteString(" - " + strings.Join(l.Subtract, " - "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Write stores files in dir.
func Write(dir string, files map[string]string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(files[name]), 0o644); err != nil {
			return err
		}
		log.Infof("wrote %s", path)
	}
	return nil
}
