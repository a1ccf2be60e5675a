package networkdefinition

import (
	"sort"
	"strings"

	"solana_portfolio/internal/app/port"
	"solana_portfolio/internal/domain/entity"
)

// NetworkDefinitionProvider provides Solana cluster definitions.
type NetworkDefinitionProvider struct {
	logger         port.Logger
	allNetworkDefs map[string]entity.NetworkDefinition
}

// Predefined cluster definitions
var ( //nolint:gochecknoglobals // Global for definitions
	MainnetBeta = entity.NetworkDefinition{
		Name:             "Solana Mainnet Beta",
		Identifier:       "mainnet-beta",
		NativeSymbol:     "SOL",
		Decimals:         9,
		RPCURLTemplate:   "https://mainnet.helius-rpc.com/?api-key=",
		BlockExplorerURL: "https://explorer.solana.com",
	}
	Devnet = entity.NetworkDefinition{
		Name:             "Solana Devnet",
		Identifier:       "devnet",
		NativeSymbol:     "SOL",
		Decimals:         9,
		RPCURLTemplate:   "https://devnet.helius-rpc.com/?api-key=",
		BlockExplorerURL: "https://explorer.solana.com/?cluster=devnet",
	}
)

var allKnownDefinitions = map[string]entity.NetworkDefinition{
	MainnetBeta.Identifier: MainnetBeta,
	Devnet.Identifier:      Devnet,
}

// NewNetworkDefinitionProvider creates a provider over the known clusters.
// A non-empty rpcURLOverride replaces the endpoint template of every cluster.
func NewNetworkDefinitionProvider(log port.Logger, rpcURLOverride string) *NetworkDefinitionProvider {
	defs := make(map[string]entity.NetworkDefinition, len(allKnownDefinitions))
	for id, def := range allKnownDefinitions {
		if rpcURLOverride != "" {
			def.RPCURLTemplate = rpcURLOverride
		}
		defs[id] = def
	}
	if rpcURLOverride != "" {
		log.Info("RPC endpoint overridden by configuration", "rpc_url", rpcURLOverride)
	}
	return &NetworkDefinitionProvider{logger: log, allNetworkDefs: defs}
}

// GetAllNetworkDefinitions returns every known cluster, sorted by identifier.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defs := make([]entity.NetworkDefinition, 0, len(p.allNetworkDefs))
	for _, def := range p.allNetworkDefs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Identifier < defs[j].Identifier })
	return defs
}

// GetNetworkDefinitionByName returns a cluster by identifier or display name.
func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(nameOrIdentifier string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	if def, ok := p.allNetworkDefs[strings.ToLower(nameOrIdentifier)]; ok {
		return def, true
	}
	for _, def := range p.allNetworkDefs {
		if strings.EqualFold(def.Name, nameOrIdentifier) {
			return def, true
		}
	}
	p.logger.Warn("Unknown cluster requested", "cluster", nameOrIdentifier)
	return entity.NetworkDefinition{}, false
}
