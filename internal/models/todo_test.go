package models

import "testing"

func TestTodoValidation(t *testing.T) {
	tests := []struct {
		name    string
		todo    Todo
		wantErr bool
		errMsg  string
	}{
		{
			name:    "empty title should fail",
			todo:    Todo{Title: ""},
			wantErr: true,
			errMsg:  "title is required",
		},
		{
			name:    "whitespace title is accepted verbatim",
			todo:    Todo{Title: " "},
			wantErr: false,
		},
		{
			name:    "valid todo should pass",
			todo:    Todo{Title: "Buy milk"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.todo.Validate()
			if tt.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				} else if err.Error() != tt.errMsg {
					t.Errorf("expected error %q, got %q", tt.errMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestTodo_ToggleTwiceRestoresState(t *testing.T) {
	for _, initial := range []bool{false, true} {
		todo := Todo{Title: "Test", Complete: initial}

		todo.Toggle()
		if todo.Complete == initial {
			t.Fatalf("expected first toggle to flip %v", initial)
		}

		todo.Toggle()
		if todo.Complete != initial {
			t.Errorf("expected second toggle to restore %v, got %v", initial, todo.Complete)
		}
	}
}

func TestTodo_Status(t *testing.T) {
	tests := []struct {
		name     string
		todo     Todo
		expected string
	}{
		{
			name:     "open todo",
			todo:     Todo{Complete: false},
			expected: "open",
		},
		{
			name:     "complete todo",
			todo:     Todo{Complete: true},
			expected: "complete",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.todo.Status(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
