package repository

import (
	"testing"
	"time"

	authdomain "taskbot/internal/auth/domain"
	"taskbot/internal/task/domain"
	"taskbot/pkg/database"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite://:memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&authdomain.User{}, &domain.Task{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return db
}

func createUser(t *testing.T, db *gorm.DB, telegramID int64, username string) *authdomain.User {
	t.Helper()
	u := &authdomain.User{TelegramID: telegramID, Username: username}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestCreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormTaskRepository(db)
	anna := createUser(t, db, 1, "anna")
	ivan := createUser(t, db, 2, "ivan")

	task := &domain.Task{Title: "Отчет", CreatorID: anna.ID, Creator: anna, AssigneeID: &ivan.ID}
	if err := repo.Create(task); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.ID == 0 {
		t.Fatal("Expected id to be assigned")
	}

	found, err := repo.FindByID(task.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.Priority != domain.PriorityMedium || found.Status != domain.TaskStatusPending {
		t.Errorf("Expected defaults medium/pending, got %s/%s", found.Priority, found.Status)
	}
	if found.Creator == nil || found.Creator.Username != "anna" {
		t.Errorf("Expected creator anna preloaded, got %+v", found.Creator)
	}
	if found.Assignee == nil || found.Assignee.Username != "ivan" {
		t.Errorf("Expected assignee ivan preloaded, got %+v", found.Assignee)
	}

	created, _ := repo.FindByCreator(anna.ID)
	assigned, _ := repo.FindByAssignee(ivan.ID)
	if len(created) != 1 || len(assigned) != 1 {
		t.Errorf("Expected 1 created and 1 assigned, got %d and %d", len(created), len(assigned))
	}

	missing, err := repo.FindByID(999)
	if err != nil || missing != nil {
		t.Errorf("Expected nil, nil for missing task, got %+v, %v", missing, err)
	}
}

func TestUpdateIgnoresStaleAssociation(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormTaskRepository(db)
	anna := createUser(t, db, 1, "anna")
	ivan := createUser(t, db, 2, "ivan")
	petr := createUser(t, db, 3, "petr")

	task := &domain.Task{Title: "t", CreatorID: anna.ID, AssigneeID: &ivan.ID}
	if err := repo.Create(task); err != nil {
		t.Fatal(err)
	}
	loaded, _ := repo.FindByID(task.ID)
	loaded.AssigneeID = &petr.ID
	if err := repo.Update(loaded); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	reloaded, _ := repo.FindByID(task.ID)
	if reloaded.Assignee == nil || reloaded.Assignee.Username != "petr" {
		t.Errorf("Expected assignee petr, got %+v", reloaded.Assignee)
	}
}

func TestFindPendingReminders(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormTaskRepository(db)
	anna := createUser(t, db, 1, "anna")

	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)
	due := &domain.Task{Title: "due", CreatorID: anna.ID, ReminderAt: &past}
	later := &domain.Task{Title: "later", CreatorID: anna.ID, ReminderAt: &future}
	done := &domain.Task{Title: "done", CreatorID: anna.ID, ReminderAt: &past, Status: domain.TaskStatusCompleted}
	for _, task := range []*domain.Task{due, later, done} {
		if err := repo.Create(task); err != nil {
			t.Fatal(err)
		}
	}

	pending, err := repo.FindPendingReminders(time.Now())
	if err != nil {
		t.Fatalf("FindPendingReminders failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != due.ID {
		t.Fatalf("Expected only task %d, got %+v", due.ID, pending)
	}

	if err := repo.MarkReminderSent(due.ID); err != nil {
		t.Fatal(err)
	}
	pending, _ = repo.FindPendingReminders(time.Now())
	if len(pending) != 0 {
		t.Errorf("Expected no pending reminders after marking, got %d", len(pending))
	}
}

func TestStatistics(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormTaskRepository(db)
	anna := createUser(t, db, 1, "anna")
	ivan := createUser(t, db, 2, "ivan")

	tasks := []*domain.Task{
		{Title: "a", CreatorID: anna.ID, Priority: domain.PriorityHigh, AssigneeID: &ivan.ID, Status: domain.TaskStatusCompleted},
		{Title: "b", CreatorID: anna.ID, Priority: domain.PriorityHigh, AssigneeID: &ivan.ID},
		{Title: "c", CreatorID: ivan.ID, Priority: domain.PriorityLow},
	}
	for _, task := range tasks {
		if err := repo.Create(task); err != nil {
			t.Fatal(err)
		}
	}

	total, _ := repo.CountAll()
	completed, _ := repo.CountCompleted()
	if total != 3 || completed != 1 {
		t.Errorf("Expected 3 total / 1 completed, got %d / %d", total, completed)
	}

	byPriority, err := repo.CountByPriority()
	if err != nil {
		t.Fatalf("CountByPriority failed: %v", err)
	}
	counts := map[domain.Priority]int64{}
	for _, pc := range byPriority {
		counts[pc.Priority] = pc.Count
	}
	if counts[domain.PriorityHigh] != 2 || counts[domain.PriorityLow] != 1 {
		t.Errorf("Unexpected priority counts %v", counts)
	}

	byDay, err := repo.CountByDay()
	if err != nil {
		t.Fatalf("CountByDay failed: %v", err)
	}
	if len(byDay) != 1 || byDay[0].Count != 3 {
		t.Errorf("Expected one day with 3 tasks, got %+v", byDay)
	}

	stats, err := repo.UserStats()
	if err != nil {
		t.Fatalf("UserStats failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(stats))
	}
	if stats[0].Username != "@anna" || stats[0].Created != 2 || stats[0].Assigned != 0 {
		t.Errorf("Unexpected anna stats %+v", stats[0])
	}
	if stats[1].Username != "@ivan" || stats[1].Created != 1 || stats[1].Assigned != 2 || stats[1].Completed != 1 {
		t.Errorf("Unexpected ivan stats %+v", stats[1])
	}
}
