package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/quizcraft/quizcraft-backend/internal/apperr"
	"github.com/quizcraft/quizcraft-backend/internal/model"
)

// In-memory store fakes. They mimic the repository contracts, including
// returning pgx.ErrNoRows for missing rows and the typed quota errors
// the attempt repository produces.

type fakeUserStore struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User), nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserStore) Update(_ context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

type fakeQuizStore struct {
	quizzes map[int64]*model.Quiz
	nextID  int64
}

func newFakeQuizStore() *fakeQuizStore {
	return &fakeQuizStore{quizzes: make(map[int64]*model.Quiz), nextID: 1}
}

func (f *fakeQuizStore) Create(_ context.Context, q *model.Quiz) error {
	q.ID = f.nextID
	f.nextID++
	cp := *q
	f.quizzes[q.ID] = &cp
	return nil
}

func (f *fakeQuizStore) GetByID(_ context.Context, id int64) (*model.Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *q
	return &cp, nil
}

func (f *fakeQuizStore) ListByCreator(_ context.Context, creatorID int64) ([]model.Quiz, error) {
	var out []model.Quiz
	for _, q := range f.quizzes {
		if q.CreatorID == creatorID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuizStore) Update(_ context.Context, q *model.Quiz) error {
	if _, ok := f.quizzes[q.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *q
	f.quizzes[q.ID] = &cp
	return nil
}

func (f *fakeQuizStore) Delete(_ context.Context, id int64) error {
	delete(f.quizzes, id)
	return nil
}

type fakeQuestionStore struct {
	questions map[int64]*model.Question
	correct   map[int64]string
	nextID    int64
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{
		questions: make(map[int64]*model.Question),
		correct:   make(map[int64]string),
		nextID:    1,
	}
}

func (f *fakeQuestionStore) CreateWithAnswer(_ context.Context, q *model.Question, correct *string) error {
	q.ID = f.nextID
	f.nextID++
	if correct != nil {
		f.correct[q.ID] = *correct
		q.CorrectAnswer = correct
	}
	cp := *q
	f.questions[q.ID] = &cp
	return nil
}

func (f *fakeQuestionStore) UpdateWithAnswer(_ context.Context, q *model.Question, correct *string) error {
	if _, ok := f.questions[q.ID]; !ok {
		return pgx.ErrNoRows
	}
	if correct != nil {
		f.correct[q.ID] = *correct
		q.CorrectAnswer = correct
	} else if !q.QuestionType.NeedsCorrectAnswer() {
		delete(f.correct, q.ID)
		q.CorrectAnswer = nil
	}
	cp := *q
	f.questions[q.ID] = &cp
	return nil
}

func (f *fakeQuestionStore) GetByID(_ context.Context, id int64) (*model.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *q
	if v, ok := f.correct[id]; ok {
		val := v
		cp.CorrectAnswer = &val
	} else {
		cp.CorrectAnswer = nil
	}
	return &cp, nil
}

func (f *fakeQuestionStore) ListByQuiz(ctx context.Context, quizID int64) ([]model.Question, error) {
	var out []model.Question
	for id, q := range f.questions {
		if q.QuizID != nil && *q.QuizID == quizID {
			cp, _ := f.GetByID(ctx, id)
			out = append(out, *cp)
		}
	}
	return out, nil
}

func (f *fakeQuestionStore) ListByBank(ctx context.Context, bankID int64) ([]model.Question, error) {
	var out []model.Question
	for id, q := range f.questions {
		if q.BankID != nil && *q.BankID == bankID {
			cp, _ := f.GetByID(ctx, id)
			out = append(out, *cp)
		}
	}
	return out, nil
}

func (f *fakeQuestionStore) CorrectValue(_ context.Context, questionID int64) (string, error) {
	v, ok := f.correct[questionID]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return v, nil
}

func (f *fakeQuestionStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.questions[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.questions, id)
	delete(f.correct, id)
	return nil
}

type fakeBankStore struct {
	banks  map[int64]*model.QuestionBank
	nextID int64
}

func newFakeBankStore() *fakeBankStore {
	return &fakeBankStore{banks: make(map[int64]*model.QuestionBank), nextID: 1}
}

func (f *fakeBankStore) Create(_ context.Context, b *model.QuestionBank) error {
	b.ID = f.nextID
	f.nextID++
	cp := *b
	f.banks[b.ID] = &cp
	return nil
}

func (f *fakeBankStore) GetByCreator(_ context.Context, id, creatorID int64) (*model.QuestionBank, error) {
	b, ok := f.banks[id]
	if !ok || b.CreatorID != creatorID {
		return nil, pgx.ErrNoRows
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBankStore) ListByCreator(_ context.Context, creatorID int64) ([]model.QuestionBank, error) {
	var out []model.QuestionBank
	for _, b := range f.banks {
		if b.CreatorID == creatorID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBankStore) Update(_ context.Context, b *model.QuestionBank) error {
	if _, ok := f.banks[b.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *b
	f.banks[b.ID] = &cp
	return nil
}

func (f *fakeBankStore) Delete(_ context.Context, id int64) error {
	delete(f.banks, id)
	return nil
}

// fakeAttemptStore re-implements the quota semantics of the pgx-backed
// attempt repository so lifecycle tests exercise the same error paths.
type fakeAttemptStore struct {
	attempts map[int64]*model.QuizAttempt
	quizzes  *fakeQuizStore
	nextID   int64
}

func newFakeAttemptStore(quizzes *fakeQuizStore) *fakeAttemptStore {
	return &fakeAttemptStore{
		attempts: make(map[int64]*model.QuizAttempt),
		quizzes:  quizzes,
		nextID:   1,
	}
}

func (f *fakeAttemptStore) CreateWithinQuota(ctx context.Context, a *model.QuizAttempt) error {
	quiz, err := f.quizzes.GetByID(ctx, a.QuizID)
	if err != nil {
		return err
	}

	existing := 0
	participants := make(map[int64]bool)
	for _, at := range f.attempts {
		if at.QuizID != a.QuizID {
			continue
		}
		participants[at.UserID] = true
		if at.UserID == a.UserID {
			existing++
		}
	}
	if existing >= quiz.MaxAttempts {
		return apperr.New(apperr.StateConflict, "You have reached the maximum number of attempts")
	}
	if quiz.MaxParticipants != nil && existing == 0 && len(participants) >= *quiz.MaxParticipants {
		return apperr.New(apperr.Forbidden, "Max participants reached for this quiz")
	}

	a.ID = f.nextID
	f.nextID++
	cp := *a
	f.attempts[a.ID] = &cp
	return nil
}

func (f *fakeAttemptStore) GetByQuiz(_ context.Context, id, quizID int64) (*model.QuizAttempt, error) {
	a, ok := f.attempts[id]
	if !ok || a.QuizID != quizID {
		return nil, pgx.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAttemptStore) GetByQuizAndUser(_ context.Context, id, quizID, userID int64) (*model.QuizAttempt, error) {
	a, ok := f.attempts[id]
	if !ok || a.QuizID != quizID || a.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAttemptStore) ListByQuiz(_ context.Context, quizID int64) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for _, a := range f.attempts {
		if a.QuizID == quizID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttemptStore) ListByQuizAndUser(_ context.Context, quizID, userID int64) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for _, a := range f.attempts {
		if a.QuizID == quizID && a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAttemptStore) ListIDsByQuiz(_ context.Context, quizID int64) ([]int64, error) {
	var out []int64
	for _, a := range f.attempts {
		if a.QuizID == quizID {
			out = append(out, a.ID)
		}
	}
	return out, nil
}

func (f *fakeAttemptStore) Update(_ context.Context, a *model.QuizAttempt) error {
	stored, ok := f.attempts[a.ID]
	if !ok || stored.IsSubmitted {
		return apperr.New(apperr.StateConflict, "Attempt has already been submitted")
	}
	cp := *a
	f.attempts[a.ID] = &cp
	return nil
}

func (f *fakeAttemptStore) Delete(_ context.Context, id int64) error {
	delete(f.attempts, id)
	return nil
}

type answerKey struct {
	attemptID  int64
	questionID int64
}

type fakeAnswerStore struct {
	answers map[answerKey]*model.Answer
	nextID  int64
}

func newFakeAnswerStore() *fakeAnswerStore {
	return &fakeAnswerStore{answers: make(map[answerKey]*model.Answer), nextID: 1}
}

func (f *fakeAnswerStore) Upsert(_ context.Context, a *model.Answer) error {
	key := answerKey{attemptID: a.AttemptID, questionID: a.QuestionID}
	if existing, ok := f.answers[key]; ok {
		a.ID = existing.ID
	} else {
		a.ID = f.nextID
		f.nextID++
	}
	cp := *a
	f.answers[key] = &cp
	return nil
}

func (f *fakeAnswerStore) Get(_ context.Context, attemptID, questionID int64) (*model.Answer, error) {
	a, ok := f.answers[answerKey{attemptID: attemptID, questionID: questionID}]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAnswerStore) ListByAttempt(_ context.Context, attemptID int64) ([]model.Answer, error) {
	var out []model.Answer
	for _, a := range f.answers {
		if a.AttemptID == attemptID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAnswerStore) SetPointsAwarded(_ context.Context, answerID int64, points float64) error {
	for _, a := range f.answers {
		if a.ID == answerID {
			a.PointsAwarded = points
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeAnswerStore) Delete(_ context.Context, attemptID, questionID int64) error {
	key := answerKey{attemptID: attemptID, questionID: questionID}
	if _, ok := f.answers[key]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.answers, key)
	return nil
}

// fakeScorer returns a fixed total.
type fakeScorer struct {
	total float64
	err   error
	calls int
}

func (f *fakeScorer) Evaluate(context.Context, int64) (float64, error) {
	f.calls++
	return f.total, f.err
}
