package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	runs := []RunRecord{
		{Robot: "arm", Script: "wave.rcs", Commands: 5, Executed: 5, Duration: 3200, EndReason: "completed"},
		{Robot: "arm", Script: "pick.rcs", Commands: 8, Executed: 6, Duration: 1800, EndReason: "cancelled"},
		{Robot: "rover", Script: "patrol.rcs", Commands: 4, Executed: 4, Duration: 2100, EndReason: "completed"},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("Expected 3 runs, got %d", len(recent))
	}

	// Most recent insert comes first
	if recent[0].Script != "patrol.rcs" {
		t.Errorf("Expected most recent run first, got %s", recent[0].Script)
	}

	armRuns, err := store.RunsForRobot("arm", 10)
	if err != nil {
		t.Fatalf("RunsForRobot() failed: %v", err)
	}
	if len(armRuns) != 2 {
		t.Errorf("Expected 2 arm runs, got %d", len(armRuns))
	}
	for _, r := range armRuns {
		if r.Robot != "arm" {
			t.Errorf("RunsForRobot returned robot %q", r.Robot)
		}
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for i := 0; i < 5; i++ {
		store.SaveRun(RunRecord{Robot: "arm", Script: "s.rcs", Commands: i, EndReason: "completed"})
	}

	recent, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(recent))
	}
}

func TestStoreRunByID(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	id, err := store.SaveRun(RunRecord{
		Robot: "rover", Script: "scan.rcs", Commands: 3, Executed: 3,
		Duration: 900, EndReason: "completed",
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	rec, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if rec == nil {
		t.Fatal("RunByID() returned nil for an existing run")
	}
	if rec.Robot != "rover" || rec.Script != "scan.rcs" || rec.Duration != 900 {
		t.Errorf("RunByID() returned %+v", rec)
	}

	missing, err := store.RunByID(id + 1000)
	if err != nil {
		t.Fatalf("RunByID() for missing failed: %v", err)
	}
	if missing != nil {
		t.Error("RunByID() should return nil for a missing run")
	}
}

func TestStoreClearRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(RunRecord{Robot: "arm", Script: "a.rcs", EndReason: "completed"})
	store.SaveRun(RunRecord{Robot: "arm", Script: "b.rcs", EndReason: "completed"})
	store.SaveRun(RunRecord{Robot: "rover", Script: "c.rcs", EndReason: "completed"})

	// Clear only arm runs
	if err := store.ClearRuns("arm"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	armRuns, _ := store.RunsForRobot("arm", 10)
	if len(armRuns) != 0 {
		t.Errorf("Expected 0 arm runs after clear, got %d", len(armRuns))
	}

	roverRuns, _ := store.RunsForRobot("rover", 10)
	if len(roverRuns) != 1 {
		t.Error("Rover runs should not be affected by clearing arm runs")
	}
}

func TestStoreRobotStats(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No runs yet
	stats, err := store.GetRobotStats("arm")
	if err != nil {
		t.Fatalf("GetRobotStats() failed: %v", err)
	}
	if stats.RunsCount != 0 {
		t.Errorf("Expected 0 runs for empty robot, got %d", stats.RunsCount)
	}

	store.SaveRun(RunRecord{Robot: "arm", Script: "a.rcs", Executed: 4, Duration: 1000, EndReason: "completed"})
	store.SaveRun(RunRecord{Robot: "arm", Script: "b.rcs", Executed: 6, Duration: 3000, EndReason: "completed"})

	stats, err = store.GetRobotStats("arm")
	if err != nil {
		t.Fatalf("GetRobotStats() failed: %v", err)
	}
	if stats.RunsCount != 2 {
		t.Errorf("Expected 2 runs, got %d", stats.RunsCount)
	}
	if stats.TotalCommands != 10 {
		t.Errorf("Expected 10 total commands, got %d", stats.TotalCommands)
	}
	if stats.AvgDurationMS != 2000 {
		t.Errorf("Expected 2000ms average duration, got %v", stats.AvgDurationMS)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
