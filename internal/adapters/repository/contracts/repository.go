package contracts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/hoist/internal/domain"
	"github.com/trebuchet-org/hoist/internal/domain/config"
	"github.com/trebuchet-org/hoist/internal/domain/models"
	"github.com/trebuchet-org/hoist/internal/usecase"
)

// maxSuggestions caps the "did you mean" list on a miss
const maxSuggestions = 3

// errNoArtifacts is returned by Index when the out directory does not exist
var errNoArtifacts = errors.New("no compiled artifacts")

// Builder compiles the project before it is indexed
type Builder interface {
	Build(ctx context.Context) error
}

// Repository discovers and indexes compiled artifacts under the Foundry out directory
type Repository struct {
	projectRoot    string
	outDir         string
	build          bool
	nonInteractive bool
	builder        Builder
	selector       usecase.ArtifactSelector
	log            *slog.Logger

	mu            sync.RWMutex
	indexed       bool
	byFullName    map[string][]*models.Artifact // key: "path:Name"
	contractNames map[string][]*models.Artifact // key: contract name
}

// NewRepository creates a new artifact repository
func NewRepository(cfg *config.RuntimeConfig, builder Builder, selector usecase.ArtifactSelector, log *slog.Logger) *Repository {
	return &Repository{
		projectRoot:    cfg.ProjectRoot,
		outDir:         cfg.ArtifactsDir(),
		build:          cfg.Deploy.Build,
		nonInteractive: cfg.NonInteractive,
		builder:        builder,
		selector:       selector,
		log:            log.With("component", "ArtifactRepository"),
	}
}

// Index builds the project (when enabled) and indexes every artifact once
func (r *Repository) Index(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	r.byFullName = make(map[string][]*models.Artifact)
	r.contractNames = make(map[string][]*models.Artifact)

	if r.build && r.builder != nil {
		if err := r.builder.Build(ctx); err != nil {
			return fmt.Errorf("failed to build contracts: %w", err)
		}
	}

	if _, err := os.Stat(r.outDir); os.IsNotExist(err) {
		return fmt.Errorf("%w in %s; run forge build", errNoArtifacts, r.outDir)
	}

	err := filepath.WalkDir(r.outDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" {
			return nil
		}
		return r.processArtifact(path)
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts: %w", err)
	}

	r.indexed = true
	r.log.Debug("indexed artifacts", "dir", r.outDir, "count", len(r.byFullName))
	return nil
}

// processArtifact parses one artifact file and adds it to the indexes
func (r *Repository) processArtifact(artifactPath string) error {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return err
	}

	var file models.ArtifactFile
	if err := json.Unmarshal(data, &file); err != nil {
		// Skip invalid artifacts
		return nil
	}

	object := file.Bytecode.Object
	// abstract contracts and interfaces
	if object == "" || object == "0x" {
		return nil
	}
	// placeholders for libraries that would need linking
	if strings.Contains(object, "__$") || len(file.Bytecode.LinkReferences) > 0 {
		r.log.Debug("skipping artifact with unlinked libraries", "path", artifactPath)
		return nil
	}

	var sourceName, contractName string
	for source, contract := range file.Metadata.Settings.CompilationTarget {
		sourceName = source
		contractName = contract
		break // There should only be one entry
	}
	if contractName == "" {
		// out/<File>.sol/<Name>.json
		contractName = strings.SplitN(strings.TrimSuffix(filepath.Base(artifactPath), ".json"), ".", 2)[0]
		sourceName = filepath.Base(filepath.Dir(artifactPath))
	}

	contractABI, err := abi.JSON(bytes.NewReader(file.ABI))
	if err != nil {
		r.log.Debug("skipping artifact with unparseable abi", "path", artifactPath, "error", err)
		return nil
	}

	bytecode := common.FromHex(object)
	relPath, err := filepath.Rel(r.projectRoot, artifactPath)
	if err != nil {
		relPath = artifactPath
	}

	artifact := &models.Artifact{
		Name:            contractName,
		SourcePath:      sourceName,
		ArtifactPath:    relPath,
		CompilerVersion: file.Metadata.Compiler.Version,
		ABI:             contractABI,
		Bytecode:        bytecode,
		BytecodeHash:    crypto.Keccak256Hash(bytecode),
	}

	fullKey := artifact.FullName()
	r.byFullName[fullKey] = append(r.byFullName[fullKey], artifact)
	r.contractNames[contractName] = append(r.contractNames[contractName], artifact)
	return nil
}

// GetArtifact retrieves an artifact by "Name" or "path:Name"
func (r *Repository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if err := r.Index(ctx); err != nil {
		if errors.Is(err, errNoArtifacts) {
			return nil, &domain.ArtifactNotFoundError{Name: name, Reason: err.Error()}
		}
		return nil, err
	}

	r.mu.RLock()
	var candidates []*models.Artifact
	if strings.Contains(name, ":") {
		candidates = r.byFullName[name]
	} else {
		candidates = r.contractNames[name]
	}
	candidates = append([]*models.Artifact(nil), candidates...)
	r.mu.RUnlock()

	switch len(candidates) {
	case 0:
		return nil, &domain.ArtifactNotFoundError{Name: name, Suggestions: r.suggest(name)}
	case 1:
		return candidates[0], nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ArtifactPath < candidates[j].ArtifactPath
	})

	if r.nonInteractive || r.selector == nil {
		return nil, &domain.AmbiguousArtifactError{
			Name: name,
			Matches: lo.Map(candidates, func(a *models.Artifact, _ int) string {
				return fmt.Sprintf("%s (%s)", a.FullName(), a.ArtifactPath)
			}),
		}
	}

	selected, err := r.selector.SelectArtifact(ctx, name, candidates)
	if err != nil {
		return nil, err
	}
	return selected, nil
}

// Names returns every indexed contract name, sorted
func (r *Repository) Names(ctx context.Context) ([]string, error) {
	if err := r.Index(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := lo.Keys(r.contractNames)
	sort.Strings(names)
	return names, nil
}

// suggest returns close contract names for a miss
func (r *Repository) suggest(name string) []string {
	r.mu.RLock()
	names := lo.Keys(r.contractNames)
	r.mu.RUnlock()
	sort.Strings(names)

	query := name
	if idx := strings.LastIndex(query, ":"); idx != -1 {
		query = query[idx+1:]
	}
	if query == "" {
		return nil
	}

	var suggestions []string
	for _, n := range names {
		if strings.EqualFold(n, query) {
			suggestions = append(suggestions, n)
		}
	}
	for _, match := range fuzzy.Find(query, names) {
		suggestions = append(suggestions, match.Str)
	}

	suggestions = lo.Uniq(suggestions)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

var _ usecase.ArtifactRegistry = (*Repository)(nil)
