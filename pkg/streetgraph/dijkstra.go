package streetgraph

import (
	"container/heap"
	"fmt"

	"github.com/sudorandom/porthole/pkg/streets"
)

type pqItem struct {
	id   streets.NodeID
	dist float64
}

type pq []pqItem

func (q pq) Len() int            { return len(q) }
func (q pq) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q pq) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *pq) Push(x interface{}) { *q = append(*q, x.(pqItem)) }
func (q *pq) Pop() interface{} {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}

// ShortestPath finds the length-weighted shortest path with Dijkstra's
// algorithm. It returns the node sequence including both ends and its total
// length.
func (g *Graph) ShortestPath(from, to streets.NodeID) ([]streets.NodeID, float64, error) {
	if len(g.nodes) == 0 {
		return nil, 0, ErrEmptyGraph
	}
	if _, ok := g.Position(from); !ok {
		return nil, 0, fmt.Errorf("unknown node %d", from)
	}
	if _, ok := g.Position(to); !ok {
		return nil, 0, fmt.Errorf("unknown node %d", to)
	}

	dist := map[streets.NodeID]float64{from: 0}
	parent := map[streets.NodeID]streets.NodeID{from: from}
	done := make(map[streets.NodeID]bool)
	q := &pq{{id: from}}

	for q.Len() > 0 {
		cur := heap.Pop(q).(pqItem)
		if done[cur.id] {
			continue
		}
		done[cur.id] = true

		if cur.id == to {
			var path []streets.NodeID
			for n := to; n != from; n = parent[n] {
				path = append(path, n)
			}
			path = append(path, from)
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path, cur.dist, nil
		}

		for _, a := range g.adj[cur.id] {
			nd := cur.dist + a.length
			if old, seen := dist[a.to]; !seen || nd < old {
				dist[a.to] = nd
				parent[a.to] = cur.id
				heap.Push(q, pqItem{id: a.to, dist: nd})
			}
		}
	}
	return nil, 0, fmt.Errorf("%w: %d -> %d", ErrNoPath, from, to)
}
