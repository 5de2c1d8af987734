package stats

import (
	"encoding/json"
	"fmt"
	"linktree/scenario"
	"math"
	"os"
	"sort"
	"sync"
	"time"
)

// ReplayStats represents the replay statistics output
type ReplayStats struct {
	CountersByStructure map[string]*StructureStats `json:"countersByStructure"`
	TotalScriptCount    int                        `json:"totalScriptCount"`
	FailedScripts       []string                   `json:"failedScripts"`
	ExpectationCount    int                        `json:"expectationCount"`
	FailedExpectations  int                        `json:"failedExpectations"`
	ElapsedMillis       int64                      `json:"elapsedMillis"`
	started             time.Time
	lock                sync.Mutex
}

// StructureStats represents statistics for one structure kind (list or tree)
type StructureStats struct {
	Operations int `json:"operations"`
	Errors     int `json:"errors"`
}

// NewReplayStats creates a new ReplayStats instance and starts its clock
func NewReplayStats() *ReplayStats {
	return &ReplayStats{
		CountersByStructure: make(map[string]*StructureStats),
		FailedScripts:       []string{},
		started:             time.Now(),
	}
}

// AddReport folds one script's report into the totals. Safe for concurrent use.
func (rs *ReplayStats) AddReport(report *scenario.Report) {
	rs.lock.Lock()
	defer rs.lock.Unlock()

	rs.TotalScriptCount++
	rs.ExpectationCount += report.Expectations
	rs.FailedExpectations += len(report.Failures)
	if report.Failed() {
		rs.FailedScripts = append(rs.FailedScripts, report.Name)
	}

	for structure, count := range report.Operations {
		rs.counters(structure).Operations += count
	}
	for structure, count := range report.Errors {
		rs.counters(structure).Errors += count
	}
}

func (rs *ReplayStats) counters(structure string) *StructureStats {
	if _, exists := rs.CountersByStructure[structure]; !exists {
		rs.CountersByStructure[structure] = &StructureStats{}
	}
	return rs.CountersByStructure[structure]
}

// Finalize calculates derived fields (elapsed time) from accumulated data
func (rs *ReplayStats) Finalize() {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	sort.Strings(rs.FailedScripts)
	rs.ElapsedMillis = int64(math.Round(float64(time.Since(rs.started).Microseconds()) / 1000))
}

// WriteFile writes the stats as indented json
func (rs *ReplayStats) WriteFile(filePath string) error {
	rs.lock.Lock()
	defer rs.lock.Unlock()
	data, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %v", err)
	}
	err = os.WriteFile(filePath, data, 0666)
	if err != nil {
		return fmt.Errorf("failed to write stats to '%v': %v", filePath, err)
	}
	return nil
}
