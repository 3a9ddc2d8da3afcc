package experiment

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aunum/log"
	"github.com/samuelfneumann/ddqn/agent"
	env "github.com/samuelfneumann/ddqn/environment"
	"github.com/samuelfneumann/ddqn/experiment/checkpointer"
	"github.com/samuelfneumann/ddqn/experiment/tracker"
	ts "github.com/samuelfneumann/ddqn/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Episodic is an Experiment which trains an agent online, one episode
// at a time, until the mean score over recent episodes passes a
// threshold. The target estimators of the agent are synchronized at
// the end of every episode.
type Episodic struct {
	environment  env.Environment
	agent        agent.Agent
	config       Config
	trackers     []tracker.Tracker
	checkpointer checkpointer.Checkpointer

	renderer env.Renderer
	frame    func() string

	episode     int
	globalSteps int
	scores      []float64
}

// NewEpisodic creates and returns a new episodic experiment of agent a
// in environment e. The checkpointer c is triggered once when the task
// is solved and may be nil. Trackers t are sent the diagnostics of each
// episode and saved after each episode.
func NewEpisodic(e env.Environment, a agent.Agent, config Config,
	c checkpointer.Checkpointer, t ...tracker.Tracker) (*Episodic, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("newEpisodic: %w", err)
	}

	exp := &Episodic{
		environment:  e,
		agent:        a,
		config:       config,
		trackers:     t,
		checkpointer: c,
	}

	if config.Render {
		renderer, ok := e.(env.Renderer)
		if !ok {
			return nil, fmt.Errorf("newEpisodic: environment %T cannot "+
				"be rendered", e)
		}
		if err := os.MkdirAll(config.FramesDir(), 0755); err != nil {
			return nil, fmt.Errorf("newEpisodic: could not create frames "+
				"directory: %w", err)
		}
		exp.renderer = renderer
		exp.frame = checkpointer.FilenameEnumerator(0, 6,
			filepath.Join(config.FramesDir(), "frame"), ".png")
	}

	return exp, nil
}

// Register adds a new tracker.Tracker to the (possibly already
// running) experiment
func (e *Episodic) Register(t tracker.Tracker) {
	e.trackers = append(e.trackers, t)
}

// Scores returns the corrected scores of all finished episodes
func (e *Episodic) Scores() []float64 {
	return append([]float64(nil), e.scores...)
}

// Run runs episodes until the task is solved or the configured number
// of episodes has been run
func (e *Episodic) Run() (bool, error) {
	for e.episode < e.config.Episodes {
		solved, err := e.RunEpisode()
		if err != nil {
			return false, fmt.Errorf("run: %w", err)
		}
		if solved {
			return true, nil
		}
	}
	return false, nil
}

// RunEpisode runs a single episode of the experiment
func (e *Episodic) RunEpisode() (bool, error) {
	step, err := e.environment.Reset()
	if err != nil {
		return false, fmt.Errorf("runEpisode: could not reset environment: "+
			"%w", err)
	}
	state := observation(step)

	var score, qMaxSum float64
	var rewards []float64
	action := mat.NewVecDense(1, nil)

	for done := false; !done; {
		a, qMax, err := e.agent.SelectAction(state)
		if err != nil {
			return false, fmt.Errorf("runEpisode: could not select action: "+
				"%w", err)
		}

		action.SetVec(0, float64(a))
		step, done, err = e.environment.Step(action)
		if err != nil {
			return false, fmt.Errorf("runEpisode: could not step "+
				"environment: %w", err)
		}
		if err := e.render(); err != nil {
			return false, fmt.Errorf("runEpisode: %w", err)
		}

		reward := ShapeReward(step.Reward, done, step.TimedOut(),
			e.config.TerminalPenalty)
		next := observation(step)
		e.agent.AppendSample(ts.NewTransition(state, a, reward, next, done))

		if e.agent.Ready() {
			if err := e.agent.Train(); err != nil {
				return false, fmt.Errorf("runEpisode: %w", err)
			}
		}

		score += reward
		qMaxSum += qMax
		rewards = append(rewards, reward)
		e.globalSteps++
		state = next

		log.Debugf("step: %v  action: %v  reward: %v  q max: %v",
			step.Number, a, reward, qMax)
	}

	if err := e.agent.UpdateTargetModel(); err != nil {
		return false, fmt.Errorf("runEpisode: %w", err)
	}

	score = CorrectScore(score, step.TimedOut(), e.config.TerminalPenalty)
	e.scores = append(e.scores, score)
	result := tracker.Episode{
		Number:       e.episode,
		Score:        score,
		QMaxAvg:      qMaxSum / float64(len(rewards)),
		ActualReturn: stat.Mean(e.agent.DiscountRewards(rewards), nil),
		Steps:        len(rewards),
		MemoryLen:    e.agent.Len(),
		Epsilon:      e.agent.Epsilon(),
		GlobalSteps:  e.globalSteps,
	}
	e.episode++

	for _, t := range e.trackers {
		t.Track(result)
		if err := t.Save(); err != nil {
			return false, fmt.Errorf("runEpisode: could not save "+
				"diagnostics: %w", err)
		}
	}

	log.Infof("episode: %v  score: %v  memory length: %v  epsilon: %v  "+
		"global steps: %v", result.Number, result.Score, result.MemoryLen,
		result.Epsilon, result.GlobalSteps)

	if !e.solved() {
		return false, nil
	}

	if e.checkpointer != nil {
		if err := e.checkpointer.Checkpoint(); err != nil {
			return false, fmt.Errorf("runEpisode: %w", err)
		}
	}
	log.Successf("solved after %v episodes, mean score %v", e.episode,
		e.recentMean())
	return true, nil
}

// solved returns whether the mean of the most recent scores exceeds
// the success threshold
func (e *Episodic) solved() bool {
	return e.recentMean() > e.config.SuccessThreshold
}

// recentMean returns the mean of the last ScoreWindow scores, or of
// all scores if fewer episodes have been run
func (e *Episodic) recentMean() float64 {
	start := len(e.scores) - e.config.ScoreWindow
	if start < 0 {
		start = 0
	}
	return stat.Mean(e.scores[start:], nil)
}

func (e *Episodic) render() error {
	if e.renderer == nil {
		return nil
	}
	if err := e.renderer.Render(e.frame()); err != nil {
		return fmt.Errorf("could not render frame: %w", err)
	}
	return nil
}

// observation copies the observation of a TimeStep
func observation(step ts.TimeStep) []float64 {
	return append([]float64(nil), step.Observation.RawVector().Data...)
}
