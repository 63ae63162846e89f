package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/lshigami/redaction/internal/apperrors"
	"github.com/lshigami/redaction/internal/dto"
	"github.com/lshigami/redaction/internal/filename"
	"github.com/lshigami/redaction/internal/model"
	"github.com/lshigami/redaction/internal/repository"
	"github.com/lshigami/redaction/internal/storage"
	"github.com/lshigami/redaction/internal/storage/memory"
	"github.com/lshigami/redaction/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	files    *memory.Store
	exams    ExaminationService
	subjects SubjectService
	levels   LevelService
	tasks    TaskService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	files := memory.New()
	images := NewImageStore(files, filename.NewTimestampGenerator(), 1<<20)

	examRepo := repository.NewExaminationRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	levelRepo := repository.NewLevelRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	return &fixture{
		db:       db,
		files:    files,
		exams:    NewExaminationService(examRepo, db, images),
		subjects: NewSubjectService(subjectRepo, examRepo, db, images),
		levels:   NewLevelService(levelRepo, subjectRepo, db, images),
		tasks:    NewTaskService(taskRepo, levelRepo, images),
	}
}

func num(v string) *dto.Numeric {
	n := dto.Numeric(v)
	return &n
}

func str(v string) *string { return &v }

func (f *fixture) examination(t *testing.T) dto.ExaminationResponse {
	t.Helper()
	exam, err := f.exams.Create(context.Background(), dto.CreateExaminationRequest{Title: "Finals"})
	require.NoError(t, err)
	return *exam
}

func (f *fixture) subject(t *testing.T, examID uint) dto.SubjectResponse {
	t.Helper()
	subject, err := f.subjects.Create(context.Background(), dto.CreateSubjectRequest{
		ExaminationID: dto.Numeric(jsonID(examID)),
		Title:         "Math",
	})
	require.NoError(t, err)
	return *subject
}

func (f *fixture) level(t *testing.T, subjectID uint, number string) dto.LevelResponse {
	t.Helper()
	level, err := f.levels.Create(context.Background(), dto.CreateLevelRequest{
		SubjectID: dto.Numeric(jsonID(subjectID)),
		Number:    dto.Numeric(number),
		Title:     "Level " + number,
	})
	require.NoError(t, err)
	return *level
}

func (f *fixture) task(t *testing.T, levelID uint, withImages bool) dto.TaskResponse {
	t.Helper()
	req := dto.CreateTaskRequest{LevelID: dto.Numeric(jsonID(levelID)), Title: "Task"}
	if withImages {
		req.Image = testutil.FileHeader(t, "image", "task.png", testutil.PNG)
		req.SolutionImage = testutil.FileHeader(t, "solution_image", "solution.jpg", testutil.JPEG)
	}
	task, err := f.tasks.Create(context.Background(), req)
	require.NoError(t, err)
	return *task
}

func jsonID(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func taskPath(name string) string {
	return storage.Path(storage.TasksNamespace, name)
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	require.ErrorIs(t, err, apperrors.ErrValidation)
	fields, ok := apperrors.Fields(err)
	require.True(t, ok)
	return fields
}

func TestSubjectService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	exam := f.examination(t)

	subject := f.subject(t, exam.ID)
	assert.Equal(t, exam.ID, subject.ExaminationID)
	assert.NotZero(t, subject.ID)

	_, err := f.subjects.Create(ctx, dto.CreateSubjectRequest{ExaminationID: "999", Title: "Ghost"})
	fields := validationFields(t, err)
	assert.Equal(t, "The selected examination id is invalid.", fields["examination_id"])

	_, err = f.subjects.Create(ctx, dto.CreateSubjectRequest{ExaminationID: "1.5", Title: "Half"})
	fields = validationFields(t, err)
	assert.Contains(t, fields, "examination_id")
}

func TestLevelService_NumberUniquePerSubject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	exam := f.examination(t)
	for i := 0; i < 4; i++ {
		f.subject(t, exam.ID)
	}

	_, err := f.levels.Create(ctx, dto.CreateLevelRequest{SubjectID: "3", Number: "1", Title: "Intro"})
	require.NoError(t, err)

	_, err = f.levels.Create(ctx, dto.CreateLevelRequest{SubjectID: "3", Number: "1", Title: "Dup"})
	fields := validationFields(t, err)
	assert.Equal(t, "The number has already been taken.", fields["number"])

	_, err = f.levels.Create(ctx, dto.CreateLevelRequest{SubjectID: "4", Number: "1", Title: "OK"})
	require.NoError(t, err)
}

func TestLevelService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	exam := f.examination(t)
	first := f.subject(t, exam.ID)
	second := f.subject(t, exam.ID)

	one := f.level(t, first.ID, "1")
	two := f.level(t, first.ID, "2")
	f.level(t, second.ID, "3")

	t.Run("own number is not a conflict", func(t *testing.T) {
		got, err := f.levels.Update(ctx, one.ID, dto.UpdateLevelRequest{Number: num("1"), Title: str("Renamed")})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, 1, got.Number)
	})

	t.Run("scoped by current subject without subject_id", func(t *testing.T) {
		_, err := f.levels.Update(ctx, two.ID, dto.UpdateLevelRequest{Number: num("1")})
		fields := validationFields(t, err)
		assert.Equal(t, "The number has already been taken.", fields["number"])

		got, err := f.levels.Update(ctx, two.ID, dto.UpdateLevelRequest{Number: num("3")})
		require.NoError(t, err)
		assert.Equal(t, 3, got.Number)
	})

	t.Run("scoped by requested subject", func(t *testing.T) {
		_, err := f.levels.Update(ctx, two.ID, dto.UpdateLevelRequest{SubjectID: num(jsonID(second.ID))})
		fields := validationFields(t, err)
		assert.Contains(t, fields, "number")

		got, err := f.levels.Update(ctx, two.ID, dto.UpdateLevelRequest{SubjectID: num(jsonID(second.ID)), Number: num("4")})
		require.NoError(t, err)
		assert.Equal(t, second.ID, got.SubjectID)
		assert.Equal(t, 4, got.Number)
	})

	t.Run("unknown subject", func(t *testing.T) {
		_, err := f.levels.Update(ctx, one.ID, dto.UpdateLevelRequest{SubjectID: num("999")})
		fields := validationFields(t, err)
		assert.Equal(t, "The selected subject id is invalid.", fields["subject_id"])
	})

	t.Run("missing level", func(t *testing.T) {
		_, err := f.levels.Update(ctx, 999, dto.UpdateLevelRequest{Title: str("x")})
		require.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.EqualError(t, err, "Level with ID 999 not found")
	})
}

func TestTaskService_CreateWithImages(t *testing.T) {
	f := newFixture(t)
	level := f.level(t, f.subject(t, f.examination(t).ID).ID, "1")

	first := f.task(t, level.ID, true)
	second := f.task(t, level.ID, true)

	assert.NotEmpty(t, first.Image)
	assert.NotEmpty(t, first.SolutionImage)
	assert.True(t, strings.HasSuffix(first.Image, ".png"))
	assert.True(t, strings.HasSuffix(first.SolutionImage, ".jpg"))
	assert.NotEqual(t, first.Image, second.Image)
	assert.NotEqual(t, first.Image, first.SolutionImage)

	data, contentType, ok := f.files.Get(taskPath(first.Image))
	require.True(t, ok)
	assert.Equal(t, testutil.PNG, data)
	assert.Equal(t, "image/png", contentType)

	plain := f.task(t, level.ID, false)
	assert.Empty(t, plain.Image)
	assert.Empty(t, plain.SolutionImage)
	assert.Len(t, f.files.Paths(), 4)
}

func TestTaskService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.tasks.Create(ctx, dto.CreateTaskRequest{
		LevelID: "42",
		Image:   testutil.FileHeader(t, "image", "notes.txt", []byte("plain words")),
	})
	fields := validationFields(t, err)
	assert.Equal(t, "The selected level id is invalid.", fields["level_id"])
	assert.Equal(t, "The image must be a file of type: jpeg, bmp, png.", fields["image"])
	assert.Empty(t, f.files.Paths(), "nothing is written when validation fails")
}

func TestTaskService_UpdateImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	level := f.level(t, f.subject(t, f.examination(t).ID).ID, "1")
	task := f.task(t, level.ID, true)

	t.Run("replaces image and deletes the old file", func(t *testing.T) {
		got, err := f.tasks.Update(ctx, task.ID, dto.UpdateTaskRequest{
			Image: testutil.FileHeader(t, "image", "new.bmp", testutil.BMP),
		})
		require.NoError(t, err)
		assert.NotEqual(t, task.Image, got.Image)
		assert.Equal(t, task.SolutionImage, got.SolutionImage)

		_, _, ok := f.files.Get(taskPath(task.Image))
		assert.False(t, ok)
		_, _, ok = f.files.Get(taskPath(got.Image))
		assert.True(t, ok)
		task = *got
	})

	t.Run("solution image alone replaces only the solution image", func(t *testing.T) {
		got, err := f.tasks.Update(ctx, task.ID, dto.UpdateTaskRequest{
			SolutionImage: testutil.FileHeader(t, "solution_image", "s.png", testutil.PNG),
		})
		require.NoError(t, err)
		assert.Equal(t, task.Image, got.Image)
		assert.NotEqual(t, task.SolutionImage, got.SolutionImage)

		_, _, ok := f.files.Get(taskPath(task.SolutionImage))
		assert.False(t, ok)
		task = *got
	})

	t.Run("omitting images keeps them", func(t *testing.T) {
		got, err := f.tasks.Update(ctx, task.ID, dto.UpdateTaskRequest{Title: str("Edited"), Answer: str("42")})
		require.NoError(t, err)
		assert.Equal(t, "Edited", got.Title)
		assert.Equal(t, "42", got.Answer)
		assert.Equal(t, task.Image, got.Image)
		assert.Equal(t, task.SolutionImage, got.SolutionImage)
		assert.Len(t, f.files.Paths(), 2)
	})

	t.Run("invalid level leaves the task untouched", func(t *testing.T) {
		_, err := f.tasks.Update(ctx, task.ID, dto.UpdateTaskRequest{LevelID: num("77"), Title: str("Nope")})
		fields := validationFields(t, err)
		assert.Contains(t, fields, "level_id")

		tasks, err := f.tasks.ListByLevel(ctx, level.ID)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "Edited", tasks[0].Title)
	})

	t.Run("missing task", func(t *testing.T) {
		_, err := f.tasks.Update(ctx, 999, dto.UpdateTaskRequest{Title: str("x")})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestTaskService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	level := f.level(t, f.subject(t, f.examination(t).ID).ID, "1")

	withImages := f.task(t, level.ID, true)
	n, err := f.tasks.Delete(ctx, withImages.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Empty(t, f.files.Paths())

	plain := f.task(t, level.ID, false)
	n, err = f.tasks.Delete(ctx, plain.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = f.tasks.Delete(ctx, plain.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTaskService_DeleteToleratesMissingFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	level := f.level(t, f.subject(t, f.examination(t).ID).ID, "1")
	task := f.task(t, level.ID, true)

	require.NoError(t, f.files.Delete(ctx, taskPath(task.Image)))

	n, err := f.tasks.Delete(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Empty(t, f.files.Paths())
}

func TestExaminationService_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doomed := f.examination(t)
	kept := f.examination(t)
	for _, exam := range []dto.ExaminationResponse{doomed, kept} {
		level := f.level(t, f.subject(t, exam.ID).ID, "1")
		f.task(t, level.ID, true)
	}
	require.Len(t, f.files.Paths(), 4)

	n, err := f.exams.Delete(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	for table, want := range map[any]int64{
		&model.Examination{}: 1,
		&model.Subject{}:     1,
		&model.Level{}:       1,
		&model.Task{}:        1,
	} {
		var count int64
		require.NoError(t, f.db.Model(table).Count(&count).Error)
		assert.Equal(t, want, count)
	}
	assert.Len(t, f.files.Paths(), 2)

	remaining, err := f.tasks.ListByExamination(ctx, kept.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	_, _, ok := f.files.Get(taskPath(remaining[0].Image))
	assert.True(t, ok)

	n, err = f.exams.Delete(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSubjectAndLevelService_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	exam := f.examination(t)
	subject := f.subject(t, exam.ID)
	levelA := f.level(t, subject.ID, "1")
	levelB := f.level(t, subject.ID, "2")
	f.task(t, levelA.ID, true)
	f.task(t, levelB.ID, false)

	n, err := f.levels.Delete(ctx, levelA.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Empty(t, f.files.Paths())

	n, err = f.subjects.Delete(ctx, subject.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	tasks, err := f.tasks.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	levels, err := f.levels.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, levels)
}

func TestListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	exams, err := f.exams.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, exams, "empty listings are empty slices")
	assert.Empty(t, exams)

	exam := f.examination(t)
	subject := f.subject(t, exam.ID)
	level := f.level(t, subject.ID, "1")
	task := f.task(t, level.ID, false)

	bySubject, err := f.levels.ListBySubject(ctx, subject.ID)
	require.NoError(t, err)
	require.Len(t, bySubject, 1)
	assert.Equal(t, level.ID, bySubject[0].ID)

	byExam, err := f.levels.ListByExamination(ctx, exam.ID)
	require.NoError(t, err)
	assert.Len(t, byExam, 1)

	subjects, err := f.subjects.ListByExamination(ctx, exam.ID)
	require.NoError(t, err)
	assert.Len(t, subjects, 1)

	tasks, err := f.tasks.ListBySubject(ctx, subject.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)

	none, err := f.tasks.ListByExamination(ctx, 12345)
	require.NoError(t, err)
	assert.Empty(t, none)
}

type failingStore struct {
	*memory.Store
	putErr error
}

func (s *failingStore) Put(ctx context.Context, namespace, name string, r io.Reader, contentType string) error {
	if s.putErr != nil {
		return s.putErr
	}
	return s.Store.Put(ctx, namespace, name, r, contentType)
}

func TestTaskService_StorageFailure(t *testing.T) {
	f := newFixture(t)
	level := f.level(t, f.subject(t, f.examination(t).ID).ID, "1")

	store := &failingStore{Store: memory.New(), putErr: errors.New("disk full")}
	tasks := NewTaskService(repository.NewTaskRepository(f.db), repository.NewLevelRepository(f.db),
		NewImageStore(store, filename.NewUUIDGenerator(), 1<<20))

	_, err := tasks.Create(context.Background(), dto.CreateTaskRequest{
		LevelID: dto.Numeric(jsonID(level.ID)),
		Image:   testutil.FileHeader(t, "image", "a.png", testutil.PNG),
	})
	require.ErrorIs(t, err, apperrors.ErrStorage)

	all, err := tasks.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "no row is inserted when the file cannot be written")
}

func TestTaskService_UpdateStorageFailureKeepsRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	level := f.level(t, f.subject(t, f.examination(t).ID).ID, "1")
	task := f.task(t, level.ID, true)

	store := &failingStore{Store: f.files, putErr: errors.New("disk full")}
	tasks := NewTaskService(repository.NewTaskRepository(f.db), repository.NewLevelRepository(f.db),
		NewImageStore(store, filename.NewTimestampGenerator(), 1<<20))

	_, err := tasks.Update(ctx, task.ID, dto.UpdateTaskRequest{
		Title: str("Changed"),
		Image: testutil.FileHeader(t, "image", "new.png", testutil.PNG),
	})
	require.ErrorIs(t, err, apperrors.ErrStorage)

	got, err := f.tasks.ListByLevel(ctx, level.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, task.Title, got[0].Title, "text fields are not applied when an image cannot be stored")
	assert.Equal(t, task.Image, got[0].Image)
	_, _, ok := f.files.Get(taskPath(task.Image))
	assert.True(t, ok, "the current image is kept")
}

type fixedGenerator struct{ names []string }

func (g *fixedGenerator) Generate(string) (string, error) {
	name := g.names[0]
	if len(g.names) > 1 {
		g.names = g.names[1:]
	}
	return name, nil
}

func TestImageStore_RegeneratesTakenNames(t *testing.T) {
	ctx := context.Background()
	files := memory.New()
	require.NoError(t, files.Put(ctx, storage.TasksNamespace, "taken.png", strings.NewReader("x"), "image/png"))

	images := NewImageStore(files, &fixedGenerator{names: []string{"taken.png", "free.png"}}, 1<<20)
	name, err := images.Store(ctx, testutil.FileHeader(t, "image", "a.png", testutil.PNG), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "free.png", name)

	images = NewImageStore(files, &fixedGenerator{names: []string{"taken.png"}}, 1<<20)
	_, err = images.Store(ctx, testutil.FileHeader(t, "image", "a.png", testutil.PNG), "image/png")
	assert.ErrorIs(t, err, apperrors.ErrStorage)
}
