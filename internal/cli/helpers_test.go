package cli

import (
	"os"
	"path/filepath"
	"testing"
)

// testQuiz has answer key [2, 1] in 1-based choice numbers.
const testQuiz = `version: 1
title: "CLI quiz"
persistence_key: "quiz-cli"
questions:
  - prompt: "Which method creates?"
    choices: ["GET", "POST", "DELETE"]
    correct_choice: 1
    explanation: "POST creates a resource."
  - prompt: "Which code means not found?"
    choices: ["404", "200"]
    correct_choice: 0
`

// baseConfig keeps every artifact under the project root and disables the tally.
const baseConfig = `version: 1
tally:
  enabled: false
quizzes:
  extra: ["quiz.yml"]
`

// writeProject creates a project with .restlab/config.yml and quiz.yml and
// returns the project root and config path.
func writeProject(t *testing.T, configBody string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".restlab", "config.yml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("create config dir: %v", err)
	}
	if err := os.WriteFile(configPath, []byte(configBody), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "quiz.yml"), []byte(testQuiz), 0o644); err != nil {
		t.Fatalf("write quiz: %v", err)
	}
	return dir, configPath
}

// chdir switches the working directory for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
