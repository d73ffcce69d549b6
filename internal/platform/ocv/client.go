// Package ocv is the HTTP client for the on-chain voting API. It serves both
// oracle ports of the grant-governance context: consideration tallies and
// ranked-choice winners. Responses are advisory reads, so every failure mode
// collapses into ErrOracleUnavailable and the caller decides how to degrade.
package ocv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	considerationentities "grantflow/contexts/grant-governance/consideration-service/domain/entities"

	"github.com/shopspring/decimal"
)

// ErrOracleUnavailable covers timeouts, transport errors, non-2xx statuses
// and undecodable bodies alike.
var ErrOracleUnavailable = errors.New("on-chain vote oracle unavailable")

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// considerationPayload mirrors the upstream response. The upstream API spells
// the eligibility flag "elegible"; that is their contract, not a typo here.
type considerationPayload struct {
	TotalCommunityVotes         int           `json:"total_community_votes"`
	TotalPositiveCommunityVotes int           `json:"total_positive_community_votes"`
	PositiveStakeWeight         string        `json:"positive_stake_weight"`
	Elegible                    bool          `json:"elegible"`
	Votes                       []votePayload `json:"votes"`
}

type votePayload struct {
	Account   string `json:"account"`
	Hash      string `json:"hash"`
	Timestamp int64  `json:"timestamp"`
	Height    int64  `json:"height"`
	Status    string `json:"status"`
}

// rankedPayload carries the winner ordering as the oracle's numeric proposal
// ids. The payload's accompanying votes and stats blocks are not consumed.
type rankedPayload struct {
	Winners []int64 `json:"winners"`
}

func (c *Client) GetConsiderationVotes(
	ctx context.Context,
	mefID int64,
	proposalID string,
	start time.Time,
	end time.Time,
) (considerationentities.OCVSnapshot, error) {
	url := fmt.Sprintf("%s/api/mef_proposal_consideration/%d/%s/%d/%d",
		c.baseURL, mefID, proposalID, start.UnixMilli(), end.UnixMilli())

	var payload considerationPayload
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return considerationentities.OCVSnapshot{}, err
	}

	weight, err := decimal.NewFromString(payload.PositiveStakeWeight)
	if err != nil {
		c.logger.Warn("oracle returned unparseable stake weight",
			"event", "ocv_client_bad_stake_weight",
			"module", "platform/ocv",
			"proposal_id", proposalID,
			"raw", payload.PositiveStakeWeight,
		)
		weight = decimal.Zero
	}

	votes := make([]considerationentities.OCVVote, 0, len(payload.Votes))
	for _, vote := range payload.Votes {
		votes = append(votes, considerationentities.OCVVote{
			Account:   vote.Account,
			Hash:      vote.Hash,
			Timestamp: time.UnixMilli(vote.Timestamp).UTC(),
			Height:    vote.Height,
			Status:    vote.Status,
		})
	}
	return considerationentities.OCVSnapshot{
		ProposalID:          proposalID,
		TotalCommunityVotes: payload.TotalCommunityVotes,
		TotalPositiveVotes:  payload.TotalPositiveCommunityVotes,
		PositiveStakeWeight: weight,
		Eligible:            payload.Elegible,
		Votes:               votes,
	}, nil
}

func (c *Client) GetRankedVotes(ctx context.Context, mefID int64, start time.Time, end time.Time) ([]int64, error) {
	url := fmt.Sprintf("%s/api/mef_ranked_vote/%d/%d/%d",
		c.baseURL, mefID, start.UnixMilli(), end.UnixMilli())

	var payload rankedPayload
	if err := c.getJSON(ctx, url, &payload); err != nil {
		return nil, err
	}
	return payload.Winners, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrOracleUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrOracleUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrOracleUnavailable, err)
	}
	return nil
}
