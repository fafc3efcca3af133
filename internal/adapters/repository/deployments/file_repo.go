package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/hoist/internal/domain"
	"github.com/trebuchet-org/hoist/internal/domain/config"
	"github.com/trebuchet-org/hoist/internal/domain/models"
	"github.com/trebuchet-org/hoist/internal/usecase"
)

// DeploymentsDir holds one manifest file per chain, named <chainID>.json
const DeploymentsDir = "deployments"

// manifest is the on-disk layout of a chain file
type manifest struct {
	ChainID     uint64                             `json:"chainId"`
	Deployments map[string]*models.ProxyDeployment `json:"deployments"`
}

// FileRepository stores proxy deployments in json files under the data directory
type FileRepository struct {
	dir         string
	mu          sync.Mutex
	loaded      bool
	deployments map[string]*models.ProxyDeployment
	// lower-case proxy address -> ids, per chain
	byAddress map[uint64]map[string][]string
}

// NewFileRepository creates a new manifest store rooted at dataDir
func NewFileRepository(dataDir string) *FileRepository {
	return &FileRepository{
		dir: filepath.Join(dataDir, DeploymentsDir),
	}
}

// ProvideFileRepository creates a FileRepository for Wire dependency injection
func ProvideFileRepository(cfg *config.RuntimeConfig) *FileRepository {
	return NewFileRepository(cfg.DataDir)
}

// load reads every chain file once
func (m *FileRepository) load() error {
	if m.loaded {
		return nil
	}

	m.deployments = make(map[string]*models.ProxyDeployment)
	m.byAddress = make(map[uint64]map[string][]string)

	entries, err := os.ReadDir(m.dir)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", m.dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(m.dir, entry.Name()))
		if err != nil {
			return err
		}
		var mf manifest
		if err := json.Unmarshal(data, &mf); err != nil {
			return fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
		for id, dep := range mf.Deployments {
			m.deployments[id] = dep
			m.index(dep)
		}
	}

	m.loaded = true
	return nil
}

func (m *FileRepository) index(dep *models.ProxyDeployment) {
	if m.byAddress[dep.ChainID] == nil {
		m.byAddress[dep.ChainID] = make(map[string][]string)
	}
	addr := strings.ToLower(dep.ProxyAddress)
	m.byAddress[dep.ChainID][addr] = append(m.byAddress[dep.ChainID][addr], dep.ID)
}

func (m *FileRepository) unindex(dep *models.ProxyDeployment) {
	addr := strings.ToLower(dep.ProxyAddress)
	ids := lo.Without(m.byAddress[dep.ChainID][addr], dep.ID)
	if len(ids) == 0 {
		delete(m.byAddress[dep.ChainID], addr)
		return
	}
	m.byAddress[dep.ChainID][addr] = ids
}

// saveChain writes the manifest of one chain through a temp file and rename
func (m *FileRepository) saveChain(chainID uint64) error {
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", m.dir, err)
	}

	mf := manifest{
		ChainID: chainID,
		Deployments: lo.PickBy(m.deployments, func(_ string, d *models.ProxyDeployment) bool {
			return d.ChainID == chainID
		}),
	}
	data, err := json.MarshalIndent(mf, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(m.dir, strconv.FormatUint(chainID, 10)+".json")
	tmp, err := os.CreateTemp(m.dir, ".manifest-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	// Atomic rename
	return os.Rename(tmpPath, path)
}

// SaveDeployment saves a deployment
func (m *FileRepository) SaveDeployment(ctx context.Context, deployment *models.ProxyDeployment) error {
	if deployment.ID == "" {
		return fmt.Errorf("deployment has no id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.load(); err != nil {
		return err
	}

	clone := *deployment
	previous, exists := m.deployments[clone.ID]
	if !exists {
		m.index(&clone)
	}
	m.deployments[clone.ID] = &clone

	if err := m.saveChain(clone.ChainID); err != nil {
		// keep memory in step with the manifest on disk
		if exists {
			m.deployments[clone.ID] = previous
		} else {
			delete(m.deployments, clone.ID)
			m.unindex(&clone)
		}
		return fmt.Errorf("failed to save deployments: %w", err)
	}
	return nil
}

// GetDeployment retrieves a deployment by ID or unique ID prefix
func (m *FileRepository) GetDeployment(ctx context.Context, id string) (*models.ProxyDeployment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.load(); err != nil {
		return nil, err
	}

	if dep, exists := m.deployments[id]; exists {
		clone := *dep
		return &clone, nil
	}

	matches := lo.Filter(lo.Keys(m.deployments), func(key string, _ int) bool {
		return strings.HasPrefix(key, id)
	})
	switch len(matches) {
	case 0:
		return nil, domain.ErrNotFound
	case 1:
		clone := *m.deployments[matches[0]]
		return &clone, nil
	}
	sort.Strings(matches)
	return nil, fmt.Errorf("id prefix %q is ambiguous: %s", id, strings.Join(matches, ", "))
}

// GetDeploymentByAddress retrieves the latest deployment of a proxy address.
// A zero chainID searches every chain.
func (m *FileRepository) GetDeploymentByAddress(ctx context.Context, chainID uint64, address string) (*models.ProxyDeployment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.load(); err != nil {
		return nil, err
	}

	addr := strings.ToLower(address)
	var found []*models.ProxyDeployment
	for chain, addrs := range m.byAddress {
		if chainID != 0 && chain != chainID {
			continue
		}
		for _, id := range addrs[addr] {
			found = append(found, m.deployments[id])
		}
	}
	if len(found) == 0 {
		return nil, domain.ErrNotFound
	}

	latest := lo.MaxBy(found, func(a, b *models.ProxyDeployment) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
	clone := *latest
	return &clone, nil
}

// ListDeployments retrieves deployments matching the filter
func (m *FileRepository) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.ProxyDeployment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.load(); err != nil {
		return nil, err
	}

	result := make([]*models.ProxyDeployment, 0, len(m.deployments))
	for _, dep := range m.deployments {
		if filter.Namespace != "" && dep.Namespace != filter.Namespace {
			continue
		}
		if filter.ChainID != 0 && dep.ChainID != filter.ChainID {
			continue
		}
		if filter.ContractName != "" && dep.ContractName != filter.ContractName {
			continue
		}
		clone := *dep
		result = append(result, &clone)
	}

	return result, nil
}

// FindImplementation returns the latest deployment whose implementation was
// built from the given bytecode on chainID
func (m *FileRepository) FindImplementation(ctx context.Context, chainID uint64, bytecodeHash common.Hash) (*models.ProxyDeployment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.load(); err != nil {
		return nil, err
	}

	want := bytecodeHash.Hex()
	found := lo.Filter(lo.Values(m.deployments), func(d *models.ProxyDeployment, _ int) bool {
		return d.ChainID == chainID && strings.EqualFold(d.BytecodeHash, want)
	})
	if len(found) == 0 {
		return nil, domain.ErrNotFound
	}

	latest := lo.MaxBy(found, func(a, b *models.ProxyDeployment) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
	clone := *latest
	return &clone, nil
}

var _ usecase.DeploymentStore = (*FileRepository)(nil)
