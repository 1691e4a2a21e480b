// Package graphql exposes a read-only GraphQL API over a traceability graph
// snapshot.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/dd0wney/biztrace/pkg/model"
	"github.com/dd0wney/biztrace/pkg/traceability"
)

// GraphProvider returns the current graph snapshot. The server swaps
// snapshots on reload, so resolvers must fetch per query rather than capture
// a graph at schema-build time.
type GraphProvider func() *traceability.Graph

// NewSchema builds the GraphQL schema. All queries are reads over the
// provider's current snapshot; there are no mutations, the graph is only
// ever rebuilt from source documents.
func NewSchema(provide GraphProvider) (graphql.Schema, error) {
	nodeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Node",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(traceability.Node).ID, nil
				},
			},
			"layer": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(traceability.Node).Layer, nil
				},
			},
			"type": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(traceability.Node).Type, nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(traceability.Node).Title, nil
				},
			},
			"description": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(traceability.Node).Description, nil
				},
			},
			"color": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return traceability.NodeColor(p.Source.(traceability.Node).Layer), nil
				},
			},
		},
	})

	edgeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Edge",
		Fields: graphql.Fields{
			"source": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(traceability.Edge).Source, nil
				},
			},
			"target": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(traceability.Edge).Target, nil
				},
			},
			"type": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(traceability.Edge).Type, nil
				},
			},
			"strength": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(traceability.Edge).Strength, nil
				},
			},
			"metadata": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(traceability.Edge).Metadata, nil
				},
			},
		},
	})

	layerCountType := graphql.NewObject(graphql.ObjectConfig{
		Name: "LayerCount",
		Fields: graphql.Fields{
			"layer": &graphql.Field{Type: graphql.String},
			"count": &graphql.Field{Type: graphql.Int},
		},
	})
	typeCountType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TypeCount",
		Fields: graphql.Fields{
			"type":  &graphql.Field{Type: graphql.String},
			"count": &graphql.Field{Type: graphql.Int},
		},
	})

	statsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Stats",
		Fields: graphql.Fields{
			"totalNodes": &graphql.Field{Type: graphql.Int},
			"totalEdges": &graphql.Field{Type: graphql.Int},
			"nodesByLayer": &graphql.Field{
				Type: graphql.NewList(layerCountType),
			},
			"edgesByType": &graphql.Field{
				Type: graphql.NewList(typeCountType),
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"health": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return "ok", nil
				},
			},
			"node": &graphql.Field{
				Type: nodeType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id := p.Args["id"].(string)
					n := traceability.GetNodeByID(provide(), id)
					if n == nil {
						return nil, nil
					}
					return *n, nil
				},
			},
			"nodes": &graphql.Field{
				Type: graphql.NewList(nodeType),
				Args: graphql.FieldConfigArgument{
					"layer": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					g := provide()
					if layer, ok := p.Args["layer"].(string); ok && layer != "" {
						return traceability.NodesByLayer(g, layer), nil
					}
					return g.Nodes, nil
				},
			},
			"edges": &graphql.Field{
				Type: graphql.NewList(edgeType),
				Args: graphql.FieldConfigArgument{
					"type": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					g := provide()
					edgeKind, _ := p.Args["type"].(string)
					if edgeKind == "" {
						return g.Edges, nil
					}
					var filtered []traceability.Edge
					for _, e := range g.Edges {
						if e.Type == edgeKind {
							filtered = append(filtered, e)
						}
					}
					return filtered, nil
				},
			},
			"path": &graphql.Field{
				Type:        graphql.NewList(graphql.String),
				Description: "One shortest path between two nodes, ignoring edge direction",
				Args: graphql.FieldConfigArgument{
					"from": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"to":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return traceability.FindPath(provide(), p.Args["from"].(string), p.Args["to"].(string)), nil
				},
			},
			"paths": &graphql.Field{
				Type:        graphql.NewList(graphql.NewList(graphql.String)),
				Description: "All simple directed paths between two nodes",
				Args: graphql.FieldConfigArgument{
					"from": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"to":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return traceability.FindPaths(provide(), p.Args["from"].(string), p.Args["to"].(string)), nil
				},
			},
			"stats": &graphql.Field{
				Type: statsType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					stats := traceability.Stats(provide())
					nodesByLayer := make([]map[string]any, 0, len(stats.NodesByLayer))
					for _, layer := range model.AllLayers {
						if count, ok := stats.NodesByLayer[layer]; ok {
							nodesByLayer = append(nodesByLayer, map[string]any{"layer": layer, "count": count})
						}
					}
					edgesByType := make([]map[string]any, 0, len(stats.EdgesByType))
					for edgeKind, count := range stats.EdgesByType {
						edgesByType = append(edgesByType, map[string]any{"type": edgeKind, "count": count})
					}
					return map[string]any{
						"totalNodes":   stats.TotalNodes,
						"totalEdges":   stats.TotalEdges,
						"nodesByLayer": nodesByLayer,
						"edgesByType":  edgesByType,
					}, nil
				},
			},
			"layers": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return model.AllLayers, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}

// ExecuteQuery runs a GraphQL query against the schema
func ExecuteQuery(query string, schema graphql.Schema) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: query,
	})
}

// ExecuteQueryWithVariables runs a GraphQL query with variables
func ExecuteQueryWithVariables(query string, schema graphql.Schema, variables map[string]any) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: variables,
	})
}
