package model

import "testing"

func TestQuizTypeAllows(t *testing.T) {
	tests := []struct {
		quiz     QuizType
		question QuestionType
		want     bool
	}{
		{QuizTypeMCQ, QuestionTypeTrueFalse, true},
		{QuizTypeMCQ, QuestionTypeChoose, true},
		{QuizTypeMCQ, QuestionTypeWritten, false},
		{QuizTypeWritten, QuestionTypeTrueFalse, false},
		{QuizTypeWritten, QuestionTypeChoose, false},
		{QuizTypeWritten, QuestionTypeWritten, true},
		{QuizTypeMixed, QuestionTypeTrueFalse, true},
		{QuizTypeMixed, QuestionTypeChoose, true},
		{QuizTypeMixed, QuestionTypeWritten, true},
	}
	for _, tt := range tests {
		if got := tt.quiz.Allows(tt.question); got != tt.want {
			t.Errorf("%s.Allows(%s) = %v, want %v", tt.quiz, tt.question, got, tt.want)
		}
	}
}

func TestQuizTypeAllowsUnknown(t *testing.T) {
	for _, quiz := range []QuizType{QuizTypeMCQ, QuizTypeMixed, QuizTypeWritten} {
		if quiz.Allows(QuestionType("essay")) {
			t.Errorf("%s.Allows(essay) = true, want false", quiz)
		}
	}
	if QuizType("exam").Allows(QuestionTypeChoose) {
		t.Error("unknown quiz type allowed a question")
	}
}

func TestQuestionTypeNeedsCorrectAnswer(t *testing.T) {
	if !QuestionTypeTrueFalse.NeedsCorrectAnswer() {
		t.Error("true_false should require a correct answer")
	}
	if !QuestionTypeChoose.NeedsCorrectAnswer() {
		t.Error("choose should require a correct answer")
	}
	if QuestionTypeWritten.NeedsCorrectAnswer() {
		t.Error("written should not require a correct answer")
	}
}
