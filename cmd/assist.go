package cmd

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/career-assistant/internal/advisor"
	"github.com/spigell/career-assistant/internal/document"
	"github.com/spigell/career-assistant/internal/session"
)

const (
	PromptLoadResume    = "Load resume from file"
	PromptSampleResume  = "Use sample resume"
	PromptSetJob        = "Set job description"
	PromptSetCompany    = "Set company"
	PromptAnalyzeResume = "Analyze resume"
	PromptMatchJob      = "Match resume to job"
	PromptCompany       = "Research company"
	PromptInterview     = "Prepare for interview"
	PromptFull          = "Comprehensive analysis"
	PromptExit          = "Exit"
)

//go:embed sample_resume.txt
var sampleResume string

var errExit = errors.New("exit requested")

var menu = promptui.Select{
	Label: "What next?",
	Items: []string{
		PromptLoadResume, PromptSampleResume, PromptSetJob, PromptSetCompany,
		PromptAnalyzeResume, PromptMatchJob, PromptCompany, PromptInterview, PromptFull,
		PromptExit,
	},
	Size: 10,
}

var assistCmd = &cobra.Command{
	Use:   "assist",
	Short: "Interactive career assistant session",
	Run: func(_ *cobra.Command, _ []string) {
		assist()
	},
}

func init() {
	rootCmd.AddCommand(assistCmd)
}

func assist() {
	rt := setup()
	defer rt.close()

	store := session.NewStore()
	id := store.Create().ID
	rt.logger.Info("session started", zap.Stringer("session", id))

	for {
		_, action, err := menu.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return
			}
			rt.logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, rt, store, id); err != nil {
			if errors.Is(err, errExit) {
				rt.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
				return
			}
			// A failed step keeps the session going.
			rt.logger.Warn("action failed", zap.String("action", action), zap.Error(err))
		}
	}
}

func handleAction(action string, rt *runtime, store *session.Store, id uuid.UUID) error {
	current, err := store.Get(id)
	if err != nil {
		return err
	}

	switch action {
	case PromptLoadResume:
		path, err := ask("Resume file (pdf, docx or text)", true)
		if err != nil {
			return err
		}
		text, err := document.ExtractFile(path)
		if err != nil {
			return err
		}
		return setResume(rt, store, id, text)
	case PromptSampleResume:
		return setResume(rt, store, id, sampleResume)
	case PromptSetJob:
		input, err := ask("Job description file or text", true)
		if err != nil {
			return err
		}
		job, err := jobFromInput(input)
		if err != nil {
			return err
		}
		_, err = store.Update(id, func(s *session.Session) { s.JobDescription = job })
		return err
	case PromptSetCompany:
		name, err := ask("Company name", true)
		if err != nil {
			return err
		}
		_, err = store.Update(id, func(s *session.Session) { s.CompanyName = strings.TrimSpace(name) })
		return err
	case PromptAnalyzeResume:
		res, err := rt.assistant.AnalyzeResume(rt.ctx, current.ResumeText)
		if err != nil {
			return err
		}
		return saveAndRender(store, id, session.ResultResume, res, func() error { return rt.renderer.Resume(res) })
	case PromptMatchJob:
		res, err := rt.assistant.MatchJobs(rt.ctx, current.ResumeText, current.JobDescription)
		if err != nil {
			return err
		}
		return saveAndRender(store, id, session.ResultMatch, res, func() error { return rt.renderer.Match(res) })
	case PromptCompany:
		res, err := rt.assistant.ResearchCompany(rt.ctx, current.CompanyName, current.ResumeText)
		if err != nil {
			return err
		}
		return saveAndRender(store, id, session.ResultCompany, res, func() error { return rt.renderer.Company(res) })
	case PromptInterview:
		res, err := rt.assistant.PrepareInterview(rt.ctx, current.JobDescription, current.CompanyName, current.ResumeText)
		if err != nil {
			return err
		}
		return saveAndRender(store, id, session.ResultInterview, res, func() error { return rt.renderer.Interview(res) })
	case PromptFull:
		res, err := rt.assistant.Comprehensive(rt.ctx, advisor.Request{
			Resume:         current.ResumeText,
			JobDescription: current.JobDescription,
			CompanyName:    current.CompanyName,
		})
		if err != nil {
			return err
		}
		return saveAndRender(store, id, session.ResultComprehensive, res, func() error { return rt.renderer.Comprehensive(res) })
	case PromptExit:
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func setResume(rt *runtime, store *session.Store, id uuid.UUID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return advisor.ErrEmptyResume
	}

	// Earlier results describe another resume.
	_, err := store.Update(id, func(s *session.Session) {
		s.ResumeText = text
		s.Results = map[string]any{}
	})
	if err != nil {
		return err
	}

	rt.logger.Info("resume loaded", zap.Int("characters", len(text)))
	return nil
}

func saveAndRender(store *session.Store, id uuid.UUID, key string, result any, render func() error) error {
	if _, err := store.Update(id, func(s *session.Session) { s.Results[key] = result }); err != nil {
		return err
	}
	return render()
}

// jobFromInput reads input as a file when such a file exists, otherwise as the description itself.
func jobFromInput(input string) (string, error) {
	input = strings.TrimSpace(input)
	if info, err := os.Stat(input); err == nil && !info.IsDir() {
		text, err := document.ExtractFile(input)
		if err != nil {
			return "", err
		}
		return cleanJob(text), nil
	}
	return cleanJob(input), nil
}

func ask(label string, required bool) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if required && strings.TrimSpace(input) == "" {
				return errors.New("value is required")
			}
			return nil
		},
	}
	return prompt.Run()
}
