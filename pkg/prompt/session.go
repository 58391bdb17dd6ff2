package prompt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-releasecycle/pkg/model"
)

// Session runs the interactive questions of one generator invocation.
type Session struct {
	driver Driver
}

// NewSession wraps driver. A nil driver uses the survey terminal driver.
func NewSession(driver Driver) *Session {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	return &Session{driver: driver}
}

// AskToday asks for the build day, offering def as the default answer.
func (s *Session) AskToday(ctx context.Context, def time.Time) (time.Time, error) {
	answer, err := s.driver.Input(ctx, InputConfig{
		Message: "Build date (YYYY-MM-DD)",
		Default: model.FormatDate(def),
		Help:    "Dates after this day are marked as future in the tables.",
		Validator: func(value string) error {
			_, err := model.ParseDate(value)
			return err
		},
	})
	if err != nil {
		return time.Time{}, err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return model.DateOnly(def), nil
	}
	d, err := model.ParseDate(answer)
	if err != nil {
		return time.Time{}, fmt.Errorf("prompt: build date: %w", err)
	}
	return d, nil
}

// AskFormats asks which diagram formats to emit. Every entry of selected that
// appears in available is pre-checked.
func (s *Session) AskFormats(ctx context.Context, available, selected []string) ([]string, error) {
	if len(available) == 0 {
		return nil, nil
	}
	var defaults []int
	for i, option := range available {
		for _, want := range selected {
			if option == want {
				defaults = append(defaults, i)
				break
			}
		}
	}

	indices, err := s.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Diagram formats",
		Options:  available,
		Defaults: defaults,
	})
	if err != nil {
		return nil, err
	}
	var out []string
	for _, idx := range indices {
		if idx >= 0 && idx < len(available) {
			out = append(out, available[idx])
		}
	}
	if len(out) == 0 {
		return nil, ErrNothingSelected
	}
	return out, nil
}

// ConfirmOverwrite lists the files about to be replaced and asks for
// confirmation. No prompt is shown when existing is empty.
func (s *Session) ConfirmOverwrite(ctx context.Context, existing []string) (bool, error) {
	if len(existing) == 0 {
		return true, nil
	}
	var b strings.Builder
	b.WriteString("The following files will be replaced:")
	for _, path := range existing {
		b.WriteString("\n  ")
		b.WriteString(path)
	}
	if err := s.driver.Info(ctx, b.String()); err != nil {
		return false, err
	}
	return s.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Overwrite %d file(s)?", len(existing)),
		Default: false,
	})
}
