// Package test contains helpers for testing the layer stack packages.
package test

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	diff "github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/yaptide/chipstack/pkg/region"
)

func init() {
	spew.Config.DisableMethods = true
	spew.Config.DisableCapacities = true
	spew.Config.DisablePointerMethods = true
	spew.Config.DisablePointerAddresses = true
	spew.Config.SortKeys = true
}

var jsonFormatterConfig = formatter.AsciiFormatterConfig{
	Coloring:       false,
	ShowArrayIndex: true,
}

// DiffJSON returns human readable diff of two JSON documents or empty
// string when they are equal.
func DiffJSON(t *testing.T, expected, actual []byte) string {
	t.Helper()

	var expectedRaw interface{}
	if err := json.Unmarshal(expected, &expectedRaw); err != nil {
		t.Errorf("Unable to unmarshal expected JSON Error[%v]", err)
		return ""
	}
	expectedObj, isObject := expectedRaw.(map[string]interface{})
	if !isObject {
		var actualRaw interface{}
		if err := json.Unmarshal(actual, &actualRaw); err != nil {
			t.Errorf("Unable to unmarshal actual JSON Error[%v]", err)
			return ""
		}
		if reflect.DeepEqual(expectedRaw, actualRaw) {
			return ""
		}
		return fmt.Sprintf("expected %s\nactual   %s", expected, actual)
	}

	diffs, diffErr := diff.New().Compare(expected, actual)
	if diffErr != nil {
		t.Errorf("Unable to calculate diff Error[%v]", diffErr)
		return ""
	}
	if !diffs.Modified() {
		return ""
	}
	str, err := formatter.NewAsciiFormatter(expectedObj, jsonFormatterConfig).Format(diffs)
	if err != nil {
		t.Errorf("Unable to format diff Error[%v]", err)
	}
	return str
}

// DiffModel returns diff of spew dumps of two values.
func DiffModel(t *testing.T, expected, actual interface{}) string {
	t.Helper()
	if reflect.DeepEqual(expected, actual) {
		return ""
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(spew.Sdump(expected), spew.Sdump(actual), true)
	return dmp.DiffPrettyText(diffs)
}

// MarshallingCases pairs a model (always a pointer) with its JSON form.
// Whitespace in JSON is ignored.
type MarshallingCases []struct {
	Model interface{}
	JSON  string
}

// Marshal checks json.Marshal of every model against its JSON.
func Marshal(t *testing.T, testCases MarshallingCases) {
	t.Helper()
	for i, tc := range testCases {
		result, err := json.Marshal(tc.Model)
		if err != nil {
			t.Errorf("case %d: Marshal failed with Error[%v]", i, err)
			continue
		}
		if d := DiffJSON(t, []byte(tc.JSON), result); d != "" {
			t.Errorf("case %d: actual != expected\n%s", i, d)
		}
	}
}

// Unmarshal checks json.Unmarshal of every JSON against its model.
func Unmarshal(t *testing.T, testCases MarshallingCases) {
	t.Helper()
	for i, tc := range testCases {
		objType := reflect.TypeOf(tc.Model).Elem()
		result := reflect.New(objType).Interface()
		if err := json.Unmarshal([]byte(tc.JSON), result); err != nil {
			t.Errorf("case %d: Unmarshal failed with Error[%v]", i, err)
			continue
		}
		if d := DiffModel(t, tc.Model, result); d != "" {
			t.Errorf("case %d: actual != expected\n%s", i, d)
		}
	}
}

// RegionsEqual asserts that two regions cover the same area.
func RegionsEqual(t *testing.T, expected, actual region.Region, msgAndArgs ...interface{}) bool {
	t.Helper()
	if expected.Equal(actual) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf(
		"regions differ: expected area %v, actual area %v, symmetric difference %v",
		expected.Area(), actual.Area(),
		expected.Difference(actual).Area()+actual.Difference(expected).Area(),
	), msgAndArgs...)
}

// Disjoint asserts that regions pairwise share no area.
func Disjoint(t *testing.T, regions map[string]region.Region) bool {
	t.Helper()
	names := make([]string, 0, len(regions))
	for name := range regions {
		names = append(names, name)
	}
	ok := true
	for i := range names {
		for j := i + 1; j < len(names); j++ {
			a, b := regions[names[i]], regions[names[j]]
			if a.Overlaps(b) {
				ok = assert.Fail(t, fmt.Sprintf("%s overlaps %s", names[i], names[j]))
			}
		}
	}
	return ok
}

// Box returns rectangular region with corners given in database units.
func Box(x1, y1, x2, y2 float64) region.Region {
	return region.FromBox(region.NewBox(region.Point{X: x1, Y: y1}, region.Point{X: x2, Y: y2}))
}
