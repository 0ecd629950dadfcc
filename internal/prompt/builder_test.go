package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-widgetkit/pkg/choice"
	"github.com/goliatone/go-widgetkit/pkg/manifest"
	"github.com/goliatone/go-widgetkit/pkg/widgets"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	multiIdx  [][]int
	confirm   []bool
	textAreas []string
	infos     []string

	inputPos   int
	selectPos  int
	multiPos   int
	confirmPos int
	textPos    int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multi-select scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no text area scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func TestBuildWidget_MultiInput(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{0},
		inputs:    []string{"fruits", " Fruits ", "2"},
		textAreas: []string{"Banana\n\nDragon fruit=pitaya\n"},
		multiIdx:  [][]int{{1}},
		confirm:   []bool{true},
	}

	widget, err := BuildWidget(context.Background(), driver)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := manifest.Widget{
		Kind:  widgets.KindMultiInput,
		ID:    "fruits",
		Label: "Fruits",
		Choices: []manifest.ChoiceEntry{
			{Name: "Banana", Value: "Banana"},
			{Name: "Dragon fruit", Value: "pitaya"},
		},
		Selected: []string{"pitaya"},
		Multi:    &manifest.MultiSettings{Limit: 2},
	}
	if diff := cmp.Diff(want, widget); diff != "" {
		t.Fatalf("widget mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildWidget_Dropdown(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{1, 1},
		inputs:    []string{"menu", "Options", "**Help**"},
		textAreas: []string{"<p>Hi</p>"},
	}

	widget, err := BuildWidget(context.Background(), driver)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := manifest.Widget{
		Kind:  widgets.KindDropdown,
		ID:    "menu",
		Label: "Options",
		Dropdown: &manifest.DropdownSettings{
			Status:  "primary",
			Content: "<p>Hi</p>",
			Tooltip: &manifest.TooltipSettings{Title: "**Help**"},
		},
	}
	if diff := cmp.Diff(want, widget); diff != "" {
		t.Fatalf("widget mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildWidget_Errors(t *testing.T) {
	_, err := BuildWidget(context.Background(), &stubDriver{selectIdx: []int{0}, inputs: []string{"has space"}})
	if !choice.IsValidation(err) {
		t.Fatalf("expected validation error for id, got %v", err)
	}

	_, err = BuildWidget(context.Background(), &stubDriver{
		selectIdx: []int{0},
		inputs:    []string{"x", ""},
		textAreas: []string{"a\nb=a"},
	})
	if !choice.IsValidation(err) {
		t.Fatalf("expected duplicate choice error, got %v", err)
	}

	_, err = BuildWidget(context.Background(), &stubDriver{})
	if err == nil {
		t.Fatalf("expected driver error to propagate")
	}
}

func TestParseChoices(t *testing.T) {
	entries, err := ParseChoices("  \nA = a\nb\n=c\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []manifest.ChoiceEntry{
		{Name: "A", Value: "a"},
		{Name: "b", Value: "b"},
		{Name: "c", Value: "c"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseChoices("name="); !choice.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSurveyDriverHonoursContext(t *testing.T) {
	var out strings.Builder
	driver := NewSurveyDriver(&out)

	if err := driver.Info(context.Background(), "Preview"); err != nil {
		t.Fatalf("info: %v", err)
	}
	if out.String() != "Preview\n" {
		t.Fatalf("unexpected info output %q", out.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := driver.Input(ctx, InputConfig{Message: "id"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("input: expected context.Canceled, got %v", err)
	}
	if idx, err := driver.Select(ctx, SelectConfig{Options: []string{"a"}}); !errors.Is(err, context.Canceled) || idx != -1 {
		t.Fatalf("select: expected context.Canceled and -1, got %d %v", idx, err)
	}
	if _, err := driver.MultiSelect(ctx, SelectConfig{Options: []string{"a"}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("multi-select: expected context.Canceled, got %v", err)
	}
	if err := driver.Info(ctx, "late"); !errors.Is(err, context.Canceled) {
		t.Fatalf("info: expected context.Canceled, got %v", err)
	}
}
