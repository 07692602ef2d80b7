package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// SnowflakeGenerator hands out account numbers from a snowflake node.
// Numbers are unique per node and increase over time.
type SnowflakeGenerator struct {
	node *snowflake.Node
}

// NewSnowflakeGenerator creates a generator for the given node (0-1023)
func NewSnowflakeGenerator(nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node %d: %w", nodeID, err)
	}
	return &SnowflakeGenerator{node: node}, nil
}

// NextNumber returns a fresh account number
func (g *SnowflakeGenerator) NextNumber() int64 {
	return g.node.Generate().Int64()
}
