package service

import (
	"context"
	"testing"
	"time"

	"github.com/quizcraft/quizcraft-backend/internal/apperr"
	"github.com/quizcraft/quizcraft-backend/internal/model"
)

type questionFixture struct {
	svc       *QuestionService
	quizSvc   *QuizService
	quizzes   *fakeQuizStore
	questions *fakeQuestionStore
	banks     *fakeBankStore
}

func newQuestionFixture(t *testing.T) *questionFixture {
	t.Helper()
	quizzes := newFakeQuizStore()
	questions := newFakeQuestionStore()
	banks := newFakeBankStore()
	attempts := newFakeAttemptStore(quizzes)
	return &questionFixture{
		svc:       NewQuestionService(questions, quizzes, banks),
		quizSvc:   NewQuizService(quizzes, questions, attempts),
		quizzes:   quizzes,
		questions: questions,
		banks:     banks,
	}
}

func (f *questionFixture) addQuiz(t *testing.T, creatorID int64, quizType model.QuizType) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{
		Title:         "quiz",
		CreatorID:     creatorID,
		StartTime:     time.Now(),
		EndTime:       time.Now().Add(time.Hour),
		DurationHours: 1,
		MaxAttempts:   1,
		QuizType:      quizType,
	}
	if err := f.quizzes.Create(context.Background(), quiz); err != nil {
		t.Fatal(err)
	}
	return quiz
}

func TestQuestionCreateTypeCompatibility(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()
	mcq := f.addQuiz(t, 1, model.QuizTypeMCQ)

	_, err := f.svc.CreateForQuiz(ctx, mcq.ID, 1, &model.CreateQuestionRequest{
		Content:      "explain",
		QuestionType: "written",
		Points:       5,
	})
	appErr := apperr.From(err)
	if appErr == nil || appErr.Detail != "Invalid question type for this quiz" {
		t.Fatalf("err = %v, want type mismatch", err)
	}

	_, err = f.svc.CreateForQuiz(ctx, mcq.ID, 1, &model.CreateQuestionRequest{
		Content:      "pick",
		QuestionType: "riddle",
		Points:       5,
	})
	if appErr := apperr.From(err); appErr == nil || appErr.Detail != "Invalid question type" {
		t.Fatalf("err = %v, want invalid question type", err)
	}
}

func TestQuestionCreateRequiresCorrectAnswer(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()
	quiz := f.addQuiz(t, 1, model.QuizTypeMixed)

	_, err := f.svc.CreateForQuiz(ctx, quiz.ID, 1, &model.CreateQuestionRequest{
		Content:      "2+2=4?",
		QuestionType: "true_false",
		Points:       1,
	})
	appErr := apperr.From(err)
	if appErr == nil || appErr.Detail != "Correct answer is required" {
		t.Fatalf("err = %v, want correct answer required", err)
	}

	// Written questions need no canonical answer.
	q, err := f.svc.CreateForQuiz(ctx, quiz.ID, 1, &model.CreateQuestionRequest{
		Content:      "explain gravity",
		QuestionType: "written",
		Points:       10,
	})
	if err != nil {
		t.Fatalf("create written: %v", err)
	}
	if q.CorrectAnswer != nil {
		t.Error("written question stored a canonical answer")
	}
}

func TestQuestionOrderConflict(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()
	quiz := f.addQuiz(t, 1, model.QuizTypeMixed)

	order := 1
	first, err := f.svc.CreateForQuiz(ctx, quiz.ID, 1, &model.CreateQuestionRequest{
		Content:      "q1",
		QuestionType: "choose",
		Points:       2,
		Order:        &order,
		CorrectAnswer: "A",
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.svc.CreateForQuiz(ctx, quiz.ID, 1, &model.CreateQuestionRequest{
		Content:      "q2",
		QuestionType: "choose",
		Points:       2,
		Order:        &order,
		CorrectAnswer: "B",
	})
	appErr := apperr.From(err)
	if appErr == nil || appErr.Detail != "Invalid question order" {
		t.Fatalf("err = %v, want order conflict", err)
	}

	// An update keeping its own position is not a conflict.
	_, err = f.svc.UpdateForQuiz(ctx, quiz.ID, first.ID, 1, &model.UpdateQuestionRequest{
		Content:      "q1 edited",
		QuestionType: "choose",
		Points:       3,
		Order:        &order,
		CorrectAnswer: "A",
	})
	if err != nil {
		t.Fatalf("self-position update: %v", err)
	}
}

func TestQuestionOwnershipHidesForeignQuiz(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()
	quiz := f.addQuiz(t, 1, model.QuizTypeMixed)

	_, err := f.svc.CreateForQuiz(ctx, quiz.ID, 2, &model.CreateQuestionRequest{
		Content:      "q",
		QuestionType: "written",
		Points:       1,
	})
	appErr := apperr.From(err)
	if appErr == nil || appErr.Kind != apperr.NotFound {
		t.Fatalf("err = %v, want not found for foreign creator", err)
	}
}

func TestQuizUpdateTypeChangeRejectedByExistingQuestions(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()
	quiz := f.addQuiz(t, 1, model.QuizTypeMixed)

	if _, err := f.svc.CreateForQuiz(ctx, quiz.ID, 1, &model.CreateQuestionRequest{
		Content:      "essay",
		QuestionType: "written",
		Points:       5,
	}); err != nil {
		t.Fatal(err)
	}

	_, err := f.quizSvc.Update(ctx, quiz.ID, 1, &model.UpdateQuizRequest{
		Title:       "quiz",
		Description: "d",
		StartTime:   "2026-03-10 09:00:00",
		EndTime:     "2026-03-10 17:00:00",
		Duration:    1,
		MaxAttempts: 1,
		QuizType:    "mcq",
	})
	appErr := apperr.From(err)
	if appErr == nil || appErr.Detail != "Invalid question type for this quiz" {
		t.Fatalf("err = %v, want type change rejection", err)
	}
}

func TestQuizCreateParsesWindow(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()

	quiz, err := f.quizSvc.Create(ctx, 1, &model.CreateQuizRequest{
		Title:       "final",
		Description: "d",
		StartTime:   "2026-03-10 09:00:00",
		EndTime:     "2026-03-10 17:00:00",
		Duration:    2,
		MaxAttempts: 1,
		QuizType:    "mixed",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if !quiz.StartTime.Equal(want) {
		t.Errorf("start = %v, want %v", quiz.StartTime, want)
	}

	_, err = f.quizSvc.Create(ctx, 1, &model.CreateQuizRequest{
		Title:       "bad",
		Description: "d",
		StartTime:   "2026-03-10 17:00:00",
		EndTime:     "2026-03-10 09:00:00",
		Duration:    2,
		MaxAttempts: 1,
		QuizType:    "mixed",
	})
	if apperr.From(err) == nil {
		t.Errorf("inverted window accepted: %v", err)
	}

	_, err = f.quizSvc.Create(ctx, 1, &model.CreateQuizRequest{
		Title:       "bad type",
		Description: "d",
		StartTime:   "2026-03-10 09:00:00",
		EndTime:     "2026-03-10 17:00:00",
		Duration:    2,
		MaxAttempts: 1,
		QuizType:    "oral",
	})
	if appErr := apperr.From(err); appErr == nil || appErr.Detail != "Invalid quiz type" {
		t.Errorf("err = %v, want invalid quiz type", err)
	}
}

func TestStudentQuizViewStripsAnswersAndSlices(t *testing.T) {
	f := newQuestionFixture(t)
	ctx := context.Background()
	quiz := f.addQuiz(t, 1, model.QuizTypeMixed)
	quiz.IsPublished = true
	if err := f.quizzes.Update(ctx, quiz); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 4; i++ {
		order := i
		if _, err := f.svc.CreateForQuiz(ctx, quiz.ID, 1, &model.CreateQuestionRequest{
			Content:      "q",
			QuestionType: "choose",
			Points:       1,
			Order:        &order,
			CorrectAnswer: "A",
		}); err != nil {
			t.Fatal(err)
		}
	}

	detail, err := f.quizSvc.GetForStudent(ctx, quiz.ID, 1, 2)
	if err != nil {
		t.Fatalf("GetForStudent: %v", err)
	}
	if len(detail.Questions) != 2 {
		t.Errorf("sliced to %d questions, want 2", len(detail.Questions))
	}
	for _, q := range detail.Questions {
		if q.CorrectAnswer != nil {
			t.Error("student view leaked a correct answer")
		}
	}
	if detail.Attempts != nil {
		t.Error("student view leaked attempt ids")
	}
}
