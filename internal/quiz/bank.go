package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	bankKindMultipleChoice = "multiple_choice"
	bankKindOpenEnded      = "open_ended"
	bankKindTrueFalse      = "true_false"
)

// BankFile is the on-disk schema for seeding a quiz from YAML or JSON.
type BankFile struct {
	Version   int            `json:"version" yaml:"version"`
	Questions []BankQuestion `json:"questions" yaml:"questions"`
}

type BankQuestion struct {
	Kind         string   `json:"kind" yaml:"kind"`
	Text         string   `json:"text" yaml:"text"`
	Choices      []string `json:"choices,omitempty" yaml:"choices,omitempty"`
	CorrectIndex *int     `json:"correct_index,omitempty" yaml:"correct_index,omitempty"`
	Answer       string   `json:"answer,omitempty" yaml:"answer,omitempty"`
}

type Issue struct {
	Field   string
	Message string
}

type ValidationError struct {
	Issues []Issue
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question bank validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// LoadBank reads a question bank file and converts it into questions ready for
// the store. Files ending in .json are parsed as JSON, anything else as YAML.
func LoadBank(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	var bank BankFile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		bank, err = parseJSONBank(data)
	} else {
		bank, err = parseYAMLBank(data)
	}
	if err != nil {
		return nil, err
	}
	return BuildBank(bank)
}

func parseJSONBank(data []byte) (BankFile, error) {
	var bank BankFile
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&bank); err != nil {
		return BankFile{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return BankFile{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return BankFile{}, fmt.Errorf("parse json: %w", err)
	}
	return bank, nil
}

func parseYAMLBank(data []byte) (BankFile, error) {
	var bank BankFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bank); err != nil {
		return BankFile{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return BankFile{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return BankFile{}, fmt.Errorf("parse yaml: %w", err)
	}
	return bank, nil
}

// BuildBank validates every entry and returns the questions in file order. All
// problems are reported together in a *ValidationError.
func BuildBank(bank BankFile) ([]Question, error) {
	collector := &issueCollector{}
	if bank.Version == 0 {
		collector.add("version", "is required")
	} else if bank.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", bank.Version))
	}

	questions := make([]Question, 0, len(bank.Questions))
	for i, item := range bank.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		text := strings.TrimSpace(item.Text)
		if text == "" {
			collector.add(prefix+".text", "is required")
		}

		switch strings.ToLower(strings.TrimSpace(item.Kind)) {
		case bankKindMultipleChoice:
			choices := make([]string, 0, len(item.Choices))
			for choiceIndex, choice := range item.Choices {
				choice = strings.TrimSpace(choice)
				if choice == "" {
					collector.add(fmt.Sprintf("%s.choices[%d]", prefix, choiceIndex), "is required")
				}
				choices = append(choices, choice)
			}
			if len(choices) < 2 {
				collector.add(prefix+".choices", "must include at least two entries")
			}
			if item.CorrectIndex == nil {
				collector.add(prefix+".correct_index", "is required")
				continue
			}
			if *item.CorrectIndex < 0 || *item.CorrectIndex >= len(choices) {
				collector.add(prefix+".correct_index", fmt.Sprintf("out of range: %d", *item.CorrectIndex))
				continue
			}
			questions = append(questions, MultipleChoice{Prompt: text, Choices: choices, CorrectIndex: *item.CorrectIndex})
		case bankKindOpenEnded:
			answer := strings.TrimSpace(item.Answer)
			if answer == "" {
				collector.add(prefix+".answer", "is required")
				continue
			}
			questions = append(questions, OpenEnded{Prompt: text, CorrectAnswer: answer})
		case bankKindTrueFalse:
			value, err := ParseBoolLiteral(item.Answer)
			if err != nil {
				collector.add(prefix+".answer", fmt.Sprintf("expected true or false, got %q", item.Answer))
				continue
			}
			questions = append(questions, TrueFalse{Prompt: text, CorrectAnswer: value})
		default:
			collector.add(prefix+".kind", fmt.Sprintf("%s %q", ErrUnknownKind, item.Kind))
		}
	}

	if err := collector.result(); err != nil {
		return nil, err
	}
	return questions, nil
}
