package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gowrangle/ports"
)

func testBatch() ports.AbbreviationBatch {
	return ports.AbbreviationBatch{
		StartIndex: 25,
		LongNames:  []string{"Q1 | Price", "Q1 | Quality"},
	}
}

func TestAbbreviateBatch(t *testing.T) {
	mock := &MockLLMClient{Response: `{"25": "price", "26": "quality"}`}
	a := NewAbbreviatorWithClient(Config{Model: "test"}, mock)

	result, err := a.AbbreviateBatch(context.Background(), testBatch())
	if err != nil {
		t.Fatalf("AbbreviateBatch: %v", err)
	}
	if result[25] != "price" || result[26] != "quality" {
		t.Errorf("result = %v", result)
	}
}

func TestAbbreviateBatchMarkdownFences(t *testing.T) {
	mock := &MockLLMClient{Response: "```json\n{\"25\": \"price\"}\n```"}
	a := NewAbbreviatorWithClient(Config{Model: "test"}, mock)

	result, err := a.AbbreviateBatch(context.Background(), testBatch())
	if err != nil {
		t.Fatalf("AbbreviateBatch: %v", err)
	}
	if result[25] != "price" {
		t.Errorf("result = %v", result)
	}
}

func TestAbbreviateBatchLeadingChatter(t *testing.T) {
	mock := &MockLLMClient{Response: "Here is the JSON you asked for:\n{\"25\": \"price\"}"}
	a := NewAbbreviatorWithClient(Config{Model: "test"}, mock)

	result, err := a.AbbreviateBatch(context.Background(), testBatch())
	if err != nil {
		t.Fatalf("AbbreviateBatch: %v", err)
	}
	if result[25] != "price" {
		t.Errorf("result = %v", result)
	}
}

func TestAbbreviateBatchMalformedResponse(t *testing.T) {
	mock := &MockLLMClient{Response: "sorry, I cannot do that"}
	a := NewAbbreviatorWithClient(Config{Model: "test"}, mock)

	if _, err := a.AbbreviateBatch(context.Background(), testBatch()); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestAbbreviateBatchClientError(t *testing.T) {
	mock := &MockLLMClient{Error: errors.New("timeout")}
	a := NewAbbreviatorWithClient(Config{Model: "test"}, mock)

	if _, err := a.AbbreviateBatch(context.Background(), testBatch()); err == nil {
		t.Fatal("expected error when client fails")
	}
}

func TestAbbreviateBatchSkipsJunkKeys(t *testing.T) {
	mock := &MockLLMClient{Response: `{"25": "price", "not_a_number": "x", "26": "  "}`}
	a := NewAbbreviatorWithClient(Config{Model: "test"}, mock)

	result, err := a.AbbreviateBatch(context.Background(), testBatch())
	if err != nil {
		t.Fatalf("AbbreviateBatch: %v", err)
	}
	if len(result) != 1 || result[25] != "price" {
		t.Errorf("result = %v, want only column 25", result)
	}
}

func TestAbbreviateBatchEmpty(t *testing.T) {
	a := NewAbbreviatorWithClient(Config{Model: "test"}, &MockLLMClient{})

	result, err := a.AbbreviateBatch(context.Background(), ports.AbbreviationBatch{})
	if err != nil {
		t.Fatalf("AbbreviateBatch: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("result = %v, want empty", result)
	}
}

func TestBuildPromptNumbersAbsoluteIndices(t *testing.T) {
	prompt := buildPrompt(testBatch())
	for _, want := range []string{"25: Q1 | Price", "26: Q1 | Quality"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
