package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/career-assistant/internal/advisor"
	"github.com/spigell/career-assistant/internal/document"
	"github.com/spigell/career-assistant/internal/logger"
	"github.com/spigell/career-assistant/internal/render"
	"github.com/spigell/career-assistant/internal/textclean"
)

var errResumeRequired = errors.New("--resume is required")

// runtime carries everything a command needs after start-up.
type runtime struct {
	ctx       context.Context
	cancel    context.CancelFunc
	logger    *zap.Logger
	config    *Config
	assistant *advisor.Assistant
	renderer  render.Renderer
}

// setup builds the logger, config and collaborators. It exits the process on failure.
func setup() *runtime {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)

	logger, err := logger.New(logger.Options{
		JSON:  viper.GetBool("json"),
		Debug: viper.GetBool("debug"),
		Color: !viper.GetBool("output.no-color"),
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig(viper.GetViper())
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting the career-assistant", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	assistant, err := newAssistant(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating the assistant", zap.Error(err))
	}

	renderer, err := render.New(config.Output.Format, os.Stdout, config.Output.NoColor)
	if err != nil {
		logger.Fatal("creating a renderer", zap.Error(err))
	}

	return &runtime{
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger,
		config:    config,
		assistant: assistant,
		renderer:  renderer,
	}
}

func (r *runtime) close() {
	r.cancel()
	// stderr sync fails on some terminals, nothing to report.
	_ = r.logger.Sync()
}

// inputs are the documents given on the command line.
type inputs struct {
	resumeFile string
	jobFile    string
	jobText    string
	company    string
}

func addInputFlags(cmd *cobra.Command, in *inputs) {
	cmd.Flags().StringVarP(&in.resumeFile, "resume", "r", "", "resume file (pdf, docx or text)")
	cmd.Flags().StringVar(&in.jobFile, "job", "", "job description file (pdf, docx, text or html)")
	cmd.Flags().StringVar(&in.jobText, "job-text", "", "job description text")
	cmd.Flags().StringVarP(&in.company, "company", "c", "", "company name")
}

func (in *inputs) resume() (string, error) {
	if strings.TrimSpace(in.resumeFile) == "" {
		return "", errResumeRequired
	}
	return document.ExtractFile(in.resumeFile)
}

// job returns the job description, preferring --job-text over --job. Empty when neither is set.
func (in *inputs) job() (string, error) {
	text := in.jobText
	if strings.TrimSpace(text) == "" && in.jobFile != "" {
		extracted, err := document.ExtractFile(in.jobFile)
		if err != nil {
			return "", fmt.Errorf("reading job description: %w", err)
		}
		text = extracted
	}
	return cleanJob(text), nil
}

// cleanJob strips markup from postings copied from a job board.
func cleanJob(text string) string {
	if strings.Contains(text, "<") {
		return textclean.HTML(text)
	}
	return strings.TrimSpace(text)
}

var (
	resumeInputs    inputs
	matchInputs     inputs
	companyInputs   inputs
	interviewInputs inputs
	fullInputs      inputs
	skipStages      []string
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Analyze a resume: ATS score, skills and improvement advice",
	Run: func(_ *cobra.Command, _ []string) {
		rt := setup()
		defer rt.close()

		resume, err := resumeInputs.resume()
		if err != nil {
			rt.logger.Fatal("reading resume", zap.Error(err))
		}

		res, err := rt.assistant.AnalyzeResume(rt.ctx, resume)
		if err != nil {
			rt.logger.Fatal("analyzing resume", zap.Error(err))
		}

		if err := rt.renderer.Resume(res); err != nil {
			rt.logger.Fatal("rendering result", zap.Error(err))
		}
	},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a resume against a job description",
	Run: func(_ *cobra.Command, _ []string) {
		rt := setup()
		defer rt.close()

		resume, err := matchInputs.resume()
		if err != nil {
			rt.logger.Fatal("reading resume", zap.Error(err))
		}

		job, err := matchInputs.job()
		if err != nil {
			rt.logger.Fatal("reading job description", zap.Error(err))
		}
		if job == "" {
			rt.logger.Info("no job description given, showing resume skills only")
		}

		res, err := rt.assistant.MatchJobs(rt.ctx, resume, job)
		if err != nil {
			rt.logger.Fatal("matching jobs", zap.Error(err))
		}

		if err := rt.renderer.Match(res); err != nil {
			rt.logger.Fatal("rendering result", zap.Error(err))
		}
	},
}

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Research a company: news, financials, sentiment and insights",
	Run: func(_ *cobra.Command, _ []string) {
		rt := setup()
		defer rt.close()

		// The resume is optional here and only personalizes the analysis.
		var resume string
		if companyInputs.resumeFile != "" {
			text, err := companyInputs.resume()
			if err != nil {
				rt.logger.Fatal("reading resume", zap.Error(err))
			}
			resume = text
		}

		res, err := rt.assistant.ResearchCompany(rt.ctx, companyInputs.company, resume)
		if err != nil {
			rt.logger.Fatal("researching company", zap.Error(err))
		}

		if err := rt.renderer.Company(res); err != nil {
			rt.logger.Fatal("rendering result", zap.Error(err))
		}
	},
}

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Prepare for an interview: likely questions and answer strategy",
	Run: func(_ *cobra.Command, _ []string) {
		rt := setup()
		defer rt.close()

		var resume string
		if interviewInputs.resumeFile != "" {
			text, err := interviewInputs.resume()
			if err != nil {
				rt.logger.Fatal("reading resume", zap.Error(err))
			}
			resume = text
		}

		job, err := interviewInputs.job()
		if err != nil {
			rt.logger.Fatal("reading job description", zap.Error(err))
		}

		res, err := rt.assistant.PrepareInterview(rt.ctx, job, interviewInputs.company, resume)
		if err != nil {
			rt.logger.Fatal("preparing interview", zap.Error(err))
		}

		if err := rt.renderer.Interview(res); err != nil {
			rt.logger.Fatal("rendering result", zap.Error(err))
		}
	},
}

var fullCmd = &cobra.Command{
	Use:   "full",
	Short: "Run every applicable analysis and summarize them",
	Run: func(_ *cobra.Command, _ []string) {
		rt := setup()
		defer rt.close()

		resume, err := fullInputs.resume()
		if err != nil {
			rt.logger.Fatal("reading resume", zap.Error(err))
		}

		job, err := fullInputs.job()
		if err != nil {
			rt.logger.Fatal("reading job description", zap.Error(err))
		}

		stages := advisor.DefaultStages()
		for _, name := range skipStages {
			advisor.DisableByName(stages, strings.TrimSpace(name), "skipped by flag")
		}

		res, err := rt.assistant.RunStages(rt.ctx, advisor.Request{
			Resume:         resume,
			JobDescription: job,
			CompanyName:    fullInputs.company,
		}, stages)
		if err != nil {
			rt.logger.Fatal("running comprehensive analysis", zap.Error(err))
		}

		rt.logger.Info("comprehensive analysis completed", zap.Int("components", res.TotalComponents()))

		if err := rt.renderer.Comprehensive(res); err != nil {
			rt.logger.Fatal("rendering result", zap.Error(err))
		}
	},
}

func init() {
	addInputFlags(resumeCmd, &resumeInputs)
	addInputFlags(matchCmd, &matchInputs)
	addInputFlags(companyCmd, &companyInputs)
	addInputFlags(interviewCmd, &interviewInputs)
	addInputFlags(fullCmd, &fullInputs)

	fullCmd.Flags().StringSliceVar(&skipStages, "skip", nil, "stages to skip: resume_analysis, job_matching, company_research, interview_prep")

	rootCmd.AddCommand(resumeCmd, matchCmd, companyCmd, interviewCmd, fullCmd)
}
