package id

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node with the given node ID.
// The API server and the notification worker must use different node IDs.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New generates a new time-ordered int64 ID.
func New() int64 {
	return node.Generate().Int64()
}

// Format renders an ID the way it is exposed over JSON. Snowflake IDs exceed
// the 53-bit integer range of JavaScript clients, so they travel as strings.
func Format(v int64) string {
	return strconv.FormatInt(v, 10)
}

// Parse accepts the string form produced by Format.
func Parse(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty id")
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return v, nil
}
