package service

import (
	"context"
	"testing"
	"time"

	"github.com/quizcraft/quizcraft-backend/internal/apperr"
	"github.com/quizcraft/quizcraft-backend/internal/model"
)

type answerFixture struct {
	svc       *AnswerService
	attempts  *fakeAttemptStore
	questions *fakeQuestionStore
	answers   *fakeAnswerStore
	quiz      *model.Quiz
	attempt   *model.QuizAttempt
}

func newAnswerFixture(t *testing.T) *answerFixture {
	t.Helper()
	quizzes := newFakeQuizStore()
	attempts := newFakeAttemptStore(quizzes)
	questions := newFakeQuestionStore()
	answers := newFakeAnswerStore()
	ctx := context.Background()

	quiz := &model.Quiz{
		Title:         "quiz",
		CreatorID:     1,
		StartTime:     time.Now().Add(-time.Hour),
		EndTime:       time.Now().Add(time.Hour),
		DurationHours: 1,
		MaxAttempts:   3,
		IsPublished:   true,
		QuizType:      model.QuizTypeMixed,
	}
	if err := quizzes.Create(ctx, quiz); err != nil {
		t.Fatal(err)
	}
	attempt := &model.QuizAttempt{UserID: 5, QuizID: quiz.ID, StartedAt: time.Now(), EndedAt: time.Now().Add(time.Hour)}
	if err := attempts.CreateWithinQuota(ctx, attempt); err != nil {
		t.Fatal(err)
	}

	return &answerFixture{
		svc:       NewAnswerService(answers, attempts, questions, quizzes),
		attempts:  attempts,
		questions: questions,
		answers:   answers,
		quiz:      quiz,
		attempt:   attempt,
	}
}

func (f *answerFixture) addQuestion(t *testing.T, qt model.QuestionType, points int, correct string) *model.Question {
	t.Helper()
	q := &model.Question{QuizID: &f.quiz.ID, Content: "q", QuestionType: qt, Points: points}
	var c *string
	if correct != "" {
		c = &correct
	}
	if err := f.questions.CreateWithAnswer(context.Background(), q, c); err != nil {
		t.Fatal(err)
	}
	return q
}

func strptr(s string) *string { return &s }

func TestAnswerSubmitRequiresContent(t *testing.T) {
	f := newAnswerFixture(t)
	q := f.addQuestion(t, model.QuestionTypeChoose, 2, "A")

	for _, req := range []*model.SubmitAnswerRequest{{}, {Content: strptr("")}} {
		_, err := f.svc.Submit(context.Background(), f.attempt.ID, f.quiz.ID, q.ID, 5, req)
		appErr := apperr.From(err)
		if appErr == nil || appErr.Detail != "Answer content is required" {
			t.Errorf("req %+v: err = %v, want content required", req, err)
		}
	}
}

func TestAnswerSubmitProvisionalScoring(t *testing.T) {
	f := newAnswerFixture(t)
	ctx := context.Background()
	choose := f.addQuestion(t, model.QuestionTypeChoose, 3, "B")
	written := f.addQuestion(t, model.QuestionTypeWritten, 10, "")

	right, err := f.svc.Submit(ctx, f.attempt.ID, f.quiz.ID, choose.ID, 5, &model.SubmitAnswerRequest{Content: strptr("B")})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if right.PointsAwarded != 3 {
		t.Errorf("correct choose awarded %v, want 3", right.PointsAwarded)
	}

	essay, err := f.svc.Submit(ctx, f.attempt.ID, f.quiz.ID, written.ID, 5, &model.SubmitAnswerRequest{Content: strptr("long text")})
	if err != nil {
		t.Fatalf("Submit written: %v", err)
	}
	if essay.PointsAwarded != 0 {
		t.Errorf("written awarded %v provisionally, want 0", essay.PointsAwarded)
	}
}

func TestAnswerUpsertOverwrites(t *testing.T) {
	f := newAnswerFixture(t)
	ctx := context.Background()
	q := f.addQuestion(t, model.QuestionTypeChoose, 3, "B")

	first, err := f.svc.Submit(ctx, f.attempt.ID, f.quiz.ID, q.ID, 5, &model.SubmitAnswerRequest{Content: strptr("A")})
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.svc.Submit(ctx, f.attempt.ID, f.quiz.ID, q.ID, 5, &model.SubmitAnswerRequest{Content: strptr("B")})
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Errorf("second write created a new row: %d then %d", first.ID, second.ID)
	}

	stored, err := f.svc.Get(ctx, f.attempt.ID, f.quiz.ID, q.ID, 5)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Content != "B" || stored.PointsAwarded != 3 {
		t.Errorf("stored = %+v, want later write to win", stored)
	}
}

func TestAnswerWritesLockedAfterSubmission(t *testing.T) {
	f := newAnswerFixture(t)
	ctx := context.Background()
	q := f.addQuestion(t, model.QuestionTypeChoose, 3, "B")

	if _, err := f.svc.Submit(ctx, f.attempt.ID, f.quiz.ID, q.ID, 5, &model.SubmitAnswerRequest{Content: strptr("A")}); err != nil {
		t.Fatal(err)
	}

	f.attempt.IsSubmitted = true
	if err := f.attempts.Update(ctx, f.attempt); err != nil {
		t.Fatal(err)
	}

	_, err := f.svc.Submit(ctx, f.attempt.ID, f.quiz.ID, q.ID, 5, &model.SubmitAnswerRequest{Content: strptr("B")})
	appErr := apperr.From(err)
	if appErr == nil || appErr.Detail != "Attempt has already been submitted and cannot be updated" {
		t.Fatalf("write: err = %v, want locked", err)
	}

	if err := f.svc.Delete(ctx, f.attempt.ID, f.quiz.ID, q.ID, 5); apperr.From(err) == nil {
		t.Errorf("delete on submitted attempt: err = %v, want locked", err)
	}

	// Reads still work.
	if _, err := f.svc.Get(ctx, f.attempt.ID, f.quiz.ID, q.ID, 5); err != nil {
		t.Errorf("read on submitted attempt failed: %v", err)
	}
}

func TestAnswerMissingCanonicalAnswer(t *testing.T) {
	f := newAnswerFixture(t)
	ctx := context.Background()

	// A graded-type question without a stored canonical value should not
	// exist; writing an answer to one surfaces the gap.
	q := &model.Question{QuizID: &f.quiz.ID, Content: "broken", QuestionType: model.QuestionTypeChoose, Points: 2}
	if err := f.questions.CreateWithAnswer(ctx, q, nil); err != nil {
		t.Fatal(err)
	}

	_, err := f.svc.Submit(ctx, f.attempt.ID, f.quiz.ID, q.ID, 5, &model.SubmitAnswerRequest{Content: strptr("A")})
	appErr := apperr.From(err)
	if appErr == nil || appErr.Detail != "Correct answer not found" {
		t.Fatalf("err = %v, want correct answer not found", err)
	}
}

func TestAnswerForeignQuestionRejected(t *testing.T) {
	f := newAnswerFixture(t)
	ctx := context.Background()

	otherQuiz := int64(999)
	q := &model.Question{QuizID: &otherQuiz, Content: "q", QuestionType: model.QuestionTypeChoose, Points: 2}
	if err := f.questions.CreateWithAnswer(ctx, q, strptr("A")); err != nil {
		t.Fatal(err)
	}

	_, err := f.svc.Submit(ctx, f.attempt.ID, f.quiz.ID, q.ID, 5, &model.SubmitAnswerRequest{Content: strptr("A")})
	appErr := apperr.From(err)
	if appErr == nil || appErr.Kind != apperr.NotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}
