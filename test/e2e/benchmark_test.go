package e2e_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mcncl/json2table/pkg/json2table"
)

// generateNestedJSON creates a deeply nested JSON structure for benchmarking
func generateNestedJSON(depth int, width int) map[string]interface{} {
	if depth <= 0 {
		return map[string]interface{}{
			"leaf_value": "data",
			"timestamp":  time.Now().Format(time.RFC3339),
			"count":      rand.Intn(100),
			"enabled":    rand.Intn(2) == 1,
		}
	}

	result := make(map[string]interface{})
	for i := 0; i < width; i++ {
		key := fmt.Sprintf("nested_%d_%d", depth, i)
		result[key] = generateNestedJSON(depth-1, width)
	}
	return result
}

// generateWideJSON creates a JSON object with many fields at the same level
func generateWideJSON(fieldCount int) map[string]interface{} {
	result := make(map[string]interface{})

	for i := 0; i < fieldCount; i++ {
		switch i % 5 {
		case 0:
			result[fmt.Sprintf("string_field_%d", i)] = fmt.Sprintf("value_%d", i)
		case 1:
			result[fmt.Sprintf("int_field_%d", i)] = i
		case 2:
			result[fmt.Sprintf("bool_field_%d", i)] = i%2 == 0
		case 3:
			result[fmt.Sprintf("list_field_%d", i)] = []interface{}{i, i + 1, i + 2}
		case 4:
			result[fmt.Sprintf("object_field_%d", i)] = map[string]interface{}{
				"id":    i,
				"name":  fmt.Sprintf("Object %d", i),
				"value": i * 10,
			}
		}
	}

	return result
}

func benchmarkRender(b *testing.B, data interface{}) {
	jsonData, err := json.Marshal(data)
	require.NoError(b, err)
	text := string(jsonData)

	b.SetBytes(int64(len(jsonData)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := json2table.GetHTMLTable(text, json2table.Options{}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDeepNesting benchmarks rendering of deeply nested objects
func BenchmarkDeepNesting(b *testing.B) {
	depths := []struct {
		name  string
		depth int
		width int
	}{
		{"Depth3Width3", 3, 3},
		{"Depth5Width2", 5, 2},
		{"Depth2Width10", 2, 10},
	}

	for _, depth := range depths {
		b.Run(depth.name, func(b *testing.B) {
			benchmarkRender(b, generateNestedJSON(depth.depth, depth.width))
		})
	}
}

// BenchmarkWideStructures benchmarks rendering of objects with many fields
func BenchmarkWideStructures(b *testing.B) {
	for _, count := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("%dFields", count), func(b *testing.B) {
			benchmarkRender(b, generateWideJSON(count))
		})
	}
}

// BenchmarkArrayProcessing benchmarks uniform and stacked arrays of objects
func BenchmarkArrayProcessing(b *testing.B) {
	for _, count := range []int{10, 100, 1000} {
		uniform := make([]interface{}, count)
		stacked := make([]interface{}, count)
		for i := 0; i < count; i++ {
			uniform[i] = map[string]interface{}{"id": i, "name": fmt.Sprintf("Item %d", i)}
			item := map[string]interface{}{"id": i}
			if i%2 == 0 {
				item["extra"] = true
			}
			stacked[i] = item
		}

		b.Run(fmt.Sprintf("Uniform%d", count), func(b *testing.B) {
			benchmarkRender(b, uniform)
		})
		b.Run(fmt.Sprintf("Stacked%d", count), func(b *testing.B) {
			benchmarkRender(b, stacked)
		})
	}
}

// BenchmarkLargeJSON benchmarks the CLI end to end with large JSON files
func BenchmarkLargeJSON(b *testing.B) {
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	tempDir := b.TempDir()

	sizes := []struct {
		name      string
		itemCount int
	}{
		{"100Items", 100},
		{"1000Items", 1000},
		{"10000Items", 10000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			jsonFile := filepath.Join(tempDir, fmt.Sprintf("%s.json", size.name))
			generateLargeJSON(b, jsonFile, size.itemCount)

			outputFile := filepath.Join(tempDir, fmt.Sprintf("%s_output.html", size.name))

			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				cmd := exec.Command("go", "run", "../../main.go", "-i", jsonFile, "-o", outputFile)
				output, err := cmd.CombinedOutput()
				require.NoError(b, err, "CLI command failed: %s", string(output))

				_, err = os.Stat(outputFile)
				require.NoError(b, err, "Output file was not created")

				_ = os.Remove(outputFile)
			}
		})
	}
}
