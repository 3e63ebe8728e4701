package usecase

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/bereanlabs/daily-puzzles/internal/domain/assignment"
	"github.com/bereanlabs/daily-puzzles/internal/domain/connections"
	"github.com/bereanlabs/daily-puzzles/internal/domain/matchup"
	"github.com/bereanlabs/daily-puzzles/internal/domain/puzzle"
	"github.com/bereanlabs/daily-puzzles/internal/platform/cache"
)

const definitionCacheKeyPrefix = "puzzle-definition::"

// AssignmentService deals each player a stable puzzle instance: on first
// access it picks a variant (and a bank subset where the content is a bank),
// records the pick, and from then on always resolves the same instance.
type AssignmentService struct {
	puzzles     puzzle.Repository
	assignments assignment.Repository
	definitions *cache.Store
	now         func() time.Time
}

func NewAssignmentService(puzzles puzzle.Repository, assignments assignment.Repository, definitions *cache.Store) *AssignmentService {
	return &AssignmentService{
		puzzles:     puzzles,
		assignments: assignments,
		definitions: definitions,
		now:         time.Now,
	}
}

// Resolve returns the client-safe puzzle for a player, creating the
// assignment when this is the first access.
func (s *AssignmentService) Resolve(ctx context.Context, userID, gameID string) (ClientPuzzle, error) {
	ctx, span := startUsecaseSpan(ctx, "AssignmentService.Resolve")
	defer span.End()
	span.SetAttributes(attribute.String("puzzle.game_id", gameID))

	played, err := s.resolvePlayed(ctx, userID, gameID)
	if err != nil {
		return ClientPuzzle{}, err
	}

	return clientPuzzle(gameID, played)
}

// resolvePlayed is the authoritative resolution shared with the verifier and
// scorer: the full content the player was dealt, solutions included.
func (s *AssignmentService) resolvePlayed(ctx context.Context, userID, gameID string) (playedVariant, error) {
	if strings.TrimSpace(userID) == "" {
		return playedVariant{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	def, err := s.definition(ctx, gameID)
	if err != nil {
		return playedVariant{}, err
	}

	item, found, err := s.assignments.GetByUserAndGame(ctx, userID, gameID)
	if err != nil {
		return playedVariant{}, fmt.Errorf("get assignment: %w", err)
	}
	if !found {
		item, err = s.assign(ctx, userID, def)
		if err != nil {
			return playedVariant{}, err
		}
	}

	return resolvePlayed(def, item)
}

func (s *AssignmentService) definition(ctx context.Context, gameID string) (puzzle.Definition, error) {
	if strings.TrimSpace(gameID) == "" {
		return puzzle.Definition{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	if _, ok := puzzle.GameTypeFromID(gameID); !ok {
		return puzzle.Definition{}, fmt.Errorf("%w: malformed game id %q", ErrInvalidInput, gameID)
	}

	value, err := s.definitions.GetOrLoad(ctx, definitionCacheKeyPrefix+gameID, func(ctx context.Context) (any, error) {
		def, found, err := s.puzzles.GetByGameID(ctx, gameID)
		if err != nil {
			return nil, fmt.Errorf("get puzzle definition: %w", err)
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrNoPuzzle, gameID)
		}

		return def, nil
	})
	if err != nil {
		return puzzle.Definition{}, err
	}

	def, ok := value.(puzzle.Definition)
	if !ok {
		return puzzle.Definition{}, fmt.Errorf("unexpected cached definition type %T", value)
	}

	return def, nil
}

// assign picks a variant and subset under a fresh random seed and records
// the pick. A concurrent tab may win the insert race; the stored row wins.
func (s *AssignmentService) assign(ctx context.Context, userID string, def puzzle.Definition) (assignment.Assignment, error) {
	seed, err := randomSeed()
	if err != nil {
		return assignment.Assignment{}, err
	}

	rng := rand.New(rand.NewSource(seed))
	variant := def.Variants[rng.Intn(len(def.Variants))]

	item := assignment.Assignment{
		UserID:     userID,
		GameID:     def.GameID,
		VariantID:  variant.ID,
		SubsetKeys: subsetKeys(def.GameType, variant, rng),
		Seed:       seed,
		AssignedAt: s.now(),
	}
	if err := item.ValidateBasic(); err != nil {
		return assignment.Assignment{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	stored, _, err := s.assignments.Create(ctx, item)
	if err != nil {
		return assignment.Assignment{}, fmt.Errorf("create assignment: %w", err)
	}

	return stored, nil
}

// subsetKeys draws the board-sized subset for bank games. Single-solution
// games have no subset.
func subsetKeys(gameType puzzle.GameType, variant puzzle.Variant, rng *rand.Rand) []string {
	switch gameType {
	case puzzle.GameTypeConnections:
		keys := make([]string, 0, connections.BoardCategories)
		for _, i := range rng.Perm(len(variant.Connections.Categories))[:connections.BoardCategories] {
			keys = append(keys, variant.Connections.Categories[i].Name)
		}
		return keys
	case puzzle.GameTypeMatchup:
		keys := make([]string, 0, matchup.BoardPairs)
		for _, i := range rng.Perm(len(variant.Matchup.Pairs))[:matchup.BoardPairs] {
			keys = append(keys, variant.Matchup.Pairs[i].Left)
		}
		return keys
	default:
		return nil
	}
}

func randomSeed() (int64, error) {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	seed := int64(binary.BigEndian.Uint64(buf[:]) >> 1)

	return seed, nil
}

// Sample resolves a game without a player: a fixed variant under a seed
// derived from the game id, for previews and anonymous visitors. Nothing is
// persisted.
func (s *AssignmentService) Sample(ctx context.Context, gameID string) (ClientPuzzle, error) {
	ctx, span := startUsecaseSpan(ctx, "AssignmentService.Sample")
	defer span.End()

	def, err := s.definition(ctx, gameID)
	if err != nil {
		return ClientPuzzle{}, err
	}

	played, err := resolvePlayed(def, sampleAssignment(def))
	if err != nil {
		return ClientPuzzle{}, err
	}

	return clientPuzzle(gameID, played)
}

func sampleAssignment(def puzzle.Definition) assignment.Assignment {
	h := fnv.New64a()
	_, _ = h.Write([]byte(def.GameID))
	seed := int64(h.Sum64() >> 1)

	variant := def.Variants[0]
	rng := rand.New(rand.NewSource(seed))

	return assignment.Assignment{
		UserID:     "sample",
		GameID:     def.GameID,
		VariantID:  variant.ID,
		SubsetKeys: subsetKeys(def.GameType, variant, rng),
		Seed:       seed,
	}
}
