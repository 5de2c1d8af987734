package stats

import (
	"encoding/json"
	"linktree/scenario"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddReport(t *testing.T) {
	rs := NewReplayStats()
	rs.AddReport(&scenario.Report{
		Name:         "b.lt",
		Operations:   map[string]int{"list": 3, "tree": 1},
		Errors:       map[string]int{"list": 1},
		Expectations: 2,
		Failures:     []scenario.Failure{{Line: 3, Message: "boom"}},
	})
	rs.AddReport(&scenario.Report{
		Name:         "a.lt",
		Operations:   map[string]int{"list": 2},
		Errors:       map[string]int{},
		Expectations: 1,
	})
	rs.Finalize()

	assert.Equal(t, 2, rs.TotalScriptCount)
	assert.Equal(t, 3, rs.ExpectationCount)
	assert.Equal(t, 1, rs.FailedExpectations)
	assert.Equal(t, []string{"b.lt"}, rs.FailedScripts)
	assert.Equal(t, &StructureStats{Operations: 5, Errors: 1}, rs.CountersByStructure["list"])
	assert.Equal(t, &StructureStats{Operations: 1, Errors: 0}, rs.CountersByStructure["tree"])
	assert.GreaterOrEqual(t, rs.ElapsedMillis, int64(0))
}

func TestAddReportConcurrently(t *testing.T) {
	rs := NewReplayStats()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rs.AddReport(&scenario.Report{Name: "x.lt", Operations: map[string]int{"tree": 2}, Expectations: 1})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, rs.TotalScriptCount)
	assert.Equal(t, 100, rs.CountersByStructure["tree"].Operations)
}

func TestWriteFile(t *testing.T) {
	rs := NewReplayStats()
	rs.AddReport(&scenario.Report{Name: "a.lt", Operations: map[string]int{"list": 4}, Expectations: 2})
	rs.Finalize()

	outputFile := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, rs.WriteFile(outputFile))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.EqualValues(t, 1, decoded["totalScriptCount"])
	assert.EqualValues(t, 2, decoded["expectationCount"])
	assert.Equal(t, []interface{}{}, decoded["failedScripts"])
	counters := decoded["countersByStructure"].(map[string]interface{})
	assert.EqualValues(t, 4, counters["list"].(map[string]interface{})["operations"])
}
