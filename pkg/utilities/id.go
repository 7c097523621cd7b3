package utilities

import (
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewKSUID generates a new globally unique KSUID string.
func NewKSUID() string {
	return ksuid.New().String()
}

// SnowflakeNodeID returns the node ID configured via SNOWFLAKE_NODE,
// defaulting to 1 when unset or unparsable.
func SnowflakeNodeID() int64 {
	nodeEnv := os.Getenv("SNOWFLAKE_NODE")
	if nodeEnv == "" {
		return 1
	}
	nodeID, err := strconv.ParseInt(nodeEnv, 10, 64)
	if err != nil {
		return 1
	}
	return nodeID
}

// NewSnowflakeID generates a snowflake ID string using the node ID from
// the environment. If node setup fails it falls back to a KSUID string
// to ensure a unique ID is still returned.
func NewSnowflakeID() string {
	node, err := snowflake.NewNode(SnowflakeNodeID())
	if err != nil {
		return NewKSUID()
	}
	return node.Generate().String()
}
