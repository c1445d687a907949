package model

// Snapshot is a stored observation of both pool readings and the derived stats.
type Snapshot struct {
	ChainID     uint64 `json:"chain_id"`
	Pool        string `json:"pool"`
	Block       uint64 `json:"block"`
	TotalRaw    string `json:"total_raw"`
	ReservedRaw string `json:"reserved_raw"`
	Liquidity   string `json:"liquidity"`
	Reserved    string `json:"reserved"`
	Utilization string `json:"utilization"`
	FetchedAt   string `json:"fetched_at"`
}
