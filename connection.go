package paging

import (
	"fmt"

	"github.com/nrfta/paginize-go/offset"
)

// Connection represents a Relay-compliant GraphQL connection.
// It provides both edges (with cursors) and nodes (direct access) to support
// different query patterns.
//
// Type parameter T is the domain model type (e.g., User, Post, Organization).
//
// Example GraphQL schema:
//
//	type FruitConnection {
//	  edges: [FruitEdge!]!
//	  nodes: [Fruit!]!
//	  pageInfo: PageInfo!
//	}
type Connection[T any] struct {
	// Edges contains the list of edges, each with a cursor and node.
	Edges []Edge[T] `json:"edges"`

	// Nodes provides direct access to the items without cursor overhead.
	Nodes []T `json:"nodes"`

	// PageInfo contains pagination metadata (hasNextPage, cursors, etc.)
	PageInfo PageInfo `json:"pageInfo"`
}

// Edge represents a Relay-compliant edge in a connection.
type Edge[T any] struct {
	// Cursor is an offset cursor marking this item's position in the sorted source.
	Cursor string `json:"cursor"`

	// Node is the actual data item.
	Node T `json:"node"`
}

// BuildConnection creates a Connection from a PagedResult.
// It transforms each item (e.g. database model to GraphQL type) and gives
// every edge the offset cursor of its position in the sorted source.
//
// Example usage:
//
//	result, err := fruits.Paginate(ctx, filter)
//	if err != nil {
//	    return nil, err
//	}
//	return paging.BuildConnection(result, toGraphQLFruit)
func BuildConnection[From any, To any](
	result *PagedResult[From],
	transform func(From) (To, error),
) (*Connection[To], error) {
	conn := &Connection[To]{
		Nodes:    make([]To, 0, len(result.Items)),
		Edges:    make([]Edge[To], 0, len(result.Items)),
		PageInfo: result.PageInfo(),
	}

	start := result.Offset()
	for i, item := range result.Items {
		transformed, err := transform(item)
		if err != nil {
			return nil, fmt.Errorf("transform item at index %d: %w", i, err)
		}

		conn.Nodes = append(conn.Nodes, transformed)
		conn.Edges = append(conn.Edges, Edge[To]{
			Cursor: *offset.EncodeCursor(start + i),
			Node:   transformed,
		})
	}

	return conn, nil
}
