package fuzzing

import (
	"context"
	"math/rand"

	"github.com/cinderfuzz/cinder/fuzzing/detection"
	"github.com/cinderfuzz/cinder/logging"
)

// CampaignResult describes the aggregate outcome of a fuzzing campaign.
type CampaignResult struct {
	// Episodes is the number of episodes the campaign completed.
	Episodes int

	// Steps is the total number of steps taken across all episodes.
	Steps int

	// Coverage is the coverage metric of the contract under test when the campaign ended.
	Coverage float64

	// Findings lists every distinct finding reported across the campaign.
	Findings []*detection.Finding
}

// Campaign drives a fuzzer through repeated episodes with a uniform-random action source. It is the baseline driver
// used when no learned policy is attached; a policy replaces it by calling Reset and Step directly.
type Campaign struct {
	// fuzzer is the engine being driven.
	fuzzer *Fuzzer

	// episodes is the number of episodes to run.
	episodes int

	// randomProvider offers a source of random actions.
	randomProvider *rand.Rand

	// logger describes the Campaign's log object.
	logger *logging.Logger
}

// NewCampaign creates a campaign driving the given fuzzer for the given number of episodes.
func NewCampaign(fuzzer *Fuzzer, episodes int, randomProvider *rand.Rand, logger *logging.Logger) *Campaign {
	return &Campaign{
		fuzzer:         fuzzer,
		episodes:       episodes,
		randomProvider: randomProvider,
		logger:         logger,
	}
}

// Run executes the campaign: each episode resets the engine and steps it with uniformly random actions until an
// exploit terminates it, the step budget runs out, or the context is cancelled.
func (c *Campaign) Run(ctx context.Context) (*CampaignResult, error) {
	result := &CampaignResult{}
	seen := make(map[string]struct{})

	for episode := 0; episode < c.episodes; episode++ {
		if ctx.Err() != nil {
			break
		}
		if _, err := c.fuzzer.Reset(ctx); err != nil {
			return nil, err
		}

		for {
			if ctx.Err() != nil {
				break
			}
			action := Action{
				ID:  ActionID(c.randomProvider.Intn(4)),
				Arg: c.randomProvider.Intn(c.fuzzer.State().TxList.Length()),
			}
			stepResult, err := c.fuzzer.Step(ctx, action)
			if err != nil {
				return nil, err
			}
			result.Steps++

			for _, finding := range stepResult.Findings {
				if _, ok := seen[finding.DedupKey()]; ok {
					continue
				}
				seen[finding.DedupKey()] = struct{}{}
				result.Findings = append(result.Findings, finding)
			}
			if stepResult.Done || stepResult.Timeout {
				break
			}
		}

		result.Episodes++
		c.logger.Info("episode ", episode+1, " finished after ", c.fuzzer.StepCount(), " steps, coverage ", c.fuzzer.Coverage())
	}

	result.Coverage = c.fuzzer.Coverage()
	return result, ctx.Err()
}
