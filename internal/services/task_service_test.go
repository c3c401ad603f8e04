package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskboard/internal/models"
	"taskboard/internal/repository"
)

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TaskService
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.Task{})
	suite.Require().NoError(err)

	suite.service = NewTaskService(repository.NewTaskRepository(suite.db))
}

// TearDownTest runs after each test
func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskServiceTestSuite) taskCount() int64 {
	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	return count
}

func (suite *TaskServiceTestSuite) TestCreate_Defaults() {
	task, err := suite.service.Create(CreateTaskInput{Title: "Buy milk"})

	assert.NoError(suite.T(), err)
	assert.NotZero(suite.T(), task.ID)
	assert.Equal(suite.T(), "Buy milk", task.Title)
	assert.Equal(suite.T(), models.StatusPending, task.Status)
	assert.Equal(suite.T(), models.PriorityMedium, task.Priority)
	assert.Equal(suite.T(), models.DefaultCategory, task.Category)
	assert.Equal(suite.T(), models.DefaultGroup, task.GroupName)
	assert.Nil(suite.T(), task.CompletedAt)
	assert.Nil(suite.T(), task.DueDate)
}

func (suite *TaskServiceTestSuite) TestCreate_AllFields() {
	task, err := suite.service.Create(CreateTaskInput{
		Title:       "Write report",
		Description: "Quarterly numbers",
		DueDate:     "2026-09-01",
		Priority:    models.PriorityHigh,
		Category:    "work",
		Group:       "office",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "office", task.GroupName)
	assert.Equal(suite.T(), models.PriorityHigh, task.Priority)
	suite.Require().NotNil(task.DueDate)
	assert.Equal(suite.T(), "2026-09-01", task.DueDate.Format("2006-01-02"))
}

func (suite *TaskServiceTestSuite) TestCreate_MissingTitle() {
	_, err := suite.service.Create(CreateTaskInput{Title: "   "})

	assert.ErrorIs(suite.T(), err, ErrTitleRequired)
	assert.Zero(suite.T(), suite.taskCount())
}

func (suite *TaskServiceTestSuite) TestCreate_InvalidDueDate() {
	_, err := suite.service.Create(CreateTaskInput{Title: "Buy milk", DueDate: "tomorrow"})

	assert.ErrorIs(suite.T(), err, ErrInvalidDueDate)
	assert.Zero(suite.T(), suite.taskCount())
}

func (suite *TaskServiceTestSuite) TestCreate_InvalidPriority() {
	_, err := suite.service.Create(CreateTaskInput{Title: "Buy milk", Priority: "urgent"})

	assert.ErrorIs(suite.T(), err, ErrInvalidPriority)
	assert.Zero(suite.T(), suite.taskCount())
}

func (suite *TaskServiceTestSuite) TestComplete_SetsStatusAndTimestamp() {
	task, err := suite.service.Create(CreateTaskInput{Title: "Buy milk"})
	suite.Require().NoError(err)

	completed, err := suite.service.Complete(task.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.StatusDone, completed.Status)
	assert.NotNil(suite.T(), completed.CompletedAt)

	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored, task.ID).Error)
	assert.Equal(suite.T(), models.StatusDone, stored.Status)
	assert.NotNil(suite.T(), stored.CompletedAt)
}

func (suite *TaskServiceTestSuite) TestComplete_Idempotent() {
	task, err := suite.service.Create(CreateTaskInput{Title: "Buy milk"})
	suite.Require().NoError(err)

	_, err = suite.service.Complete(task.ID)
	suite.Require().NoError(err)
	again, err := suite.service.Complete(task.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.StatusDone, again.Status)
	assert.NotNil(suite.T(), again.CompletedAt)
}

func (suite *TaskServiceTestSuite) TestComplete_NotFound() {
	_, err := suite.service.Complete(9999)

	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestDelete_RemovesTask() {
	task, err := suite.service.Create(CreateTaskInput{Title: "Buy milk", Group: "home"})
	suite.Require().NoError(err)

	deleted, err := suite.service.Delete(task.ID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "home", deleted.GroupName)
	assert.Zero(suite.T(), suite.taskCount())

	tasks, err := suite.service.List(repository.TaskFilter{Group: "home"})
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), tasks)
}

func (suite *TaskServiceTestSuite) TestDelete_NotFound() {
	_, err := suite.service.Delete(9999)

	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestList_GroupPartition() {
	_, err := suite.service.Create(CreateTaskInput{Title: "Buy milk", Group: "home"})
	suite.Require().NoError(err)
	_, err = suite.service.Create(CreateTaskInput{Title: "File taxes"})
	suite.Require().NoError(err)

	home, err := suite.service.List(repository.TaskFilter{Group: "home"})
	suite.Require().NoError(err)
	def, err := suite.service.List(repository.TaskFilter{})
	suite.Require().NoError(err)

	suite.Require().Len(home, 1)
	assert.Equal(suite.T(), "Buy milk", home[0].Title)
	suite.Require().Len(def, 1)
	assert.Equal(suite.T(), "File taxes", def[0].Title)
}

func (suite *TaskServiceTestSuite) TestList_ConjunctiveFilters() {
	_, err := suite.service.Create(CreateTaskInput{Title: "Buy milk", Priority: "high", Category: "errands"})
	suite.Require().NoError(err)
	_, err = suite.service.Create(CreateTaskInput{Title: "Buy stamps", Priority: "low", Category: "errands"})
	suite.Require().NoError(err)

	tasks, err := suite.service.List(repository.TaskFilter{
		Search:   "buy",
		Priority: "high",
		Category: "errands",
	})

	suite.Require().NoError(err)
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), "Buy milk", tasks[0].Title)
}

func (suite *TaskServiceTestSuite) TestList_SearchMatchesDescription() {
	_, err := suite.service.Create(CreateTaskInput{Title: "Errand", Description: "Pick up MILK from the shop"})
	suite.Require().NoError(err)

	tasks, err := suite.service.List(repository.TaskFilter{Search: "milk"})

	suite.Require().NoError(err)
	assert.Len(suite.T(), tasks, 1)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}

func TestDueToday(t *testing.T) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.Add(24 * time.Hour)

	tasks := []models.Task{
		{ID: 1, Title: "due today", DueDate: &today, Status: models.StatusPending},
		{ID: 2, Title: "already done", DueDate: &today, Status: models.StatusDone},
		{ID: 3, Title: "due tomorrow", DueDate: &tomorrow, Status: models.StatusPending},
		{ID: 4, Title: "no due date", Status: models.StatusPending},
	}

	due := DueToday(tasks, now)

	assert.Len(t, due, 1)
	assert.Equal(t, uint64(1), due[0].ID)
}
