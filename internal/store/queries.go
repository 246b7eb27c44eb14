package store

// DQL query constants. Node identity lives in the `id` predicate; edges are
// `to` with `id`/`label` facets; `synonym`/`antonym` are dedicated predicates
// the converter emits for polarity traversal.

const queryNodeExists = `
query checkNodeExists($id: string) {
  node_exists(func: eq(id, $id)) {
    count: count(uid)
  }
}
`

const queryGetNode = `
query getNode($id: string) {
  node(func: eq(id, $id)) {
    id
    label
  }
}
`

const queryExpandOut = `
query expandOut($id: string) {
  expand(func: eq(id, $id)) {
    to @facets(id, label) {
      id
      label
    }
  }
}
`

const queryExpandIn = `
query expandIn($id: string) {
  expand(func: eq(id, $id)) {
    ~to @facets(id, label) {
      id
      label
    }
  }
}
`

const querySuccessors = `
query getSuccessors($id: string) {
  successors(func: eq(id, $id)) @normalize {
    successors: to {
      id: id
      label: label
    }
  }
}
`

const queryCountSuccessors = `
query countSuccessors($id: string) {
  successors(func: eq(id, $id)) {
    count: count(to)
  }
}
`

const queryPredecessors = `
query getPredecessors($id: string) {
  predecessors(func: eq(id, $id)) @normalize {
    predecessors: ~to {
      id: id
      label: label
    }
  }
}
`

const queryCountPredecessors = `
query countPredecessors($id: string) {
  predecessors(func: eq(id, $id)) {
    count: count(~to)
  }
}
`

const queryNeighbors = `
query getNeighbors($id: string) {
  var(func: eq(id, $id)) {
    succ as to
    pred as ~to
  }

  neighbors(func: uid(succ, pred)) {
    id
    label
  }
}
`

const queryCountNeighbors = `
query countNeighbors($id: string) {
  neighbors(func: eq(id, $id)) {
    count: unique_neighbors_count
  }
}
`

const queryGrandchildren = `
query getGrandchildren($id: string) {
  var(func: eq(id, $id)) {
    to {
      to {
        unique_nodes as uid
      }
    }
  }

  grandchildren(func: uid(unique_nodes)) @normalize {
    id: id
    label: label
  }
}
`

const queryGrandparents = `
query getGrandparents($id: string) {
  var(func: eq(id, $id)) {
    ~to {
      ~to {
        unique_parents as uid
      }
    }
  }

  grandparents(func: uid(unique_parents)) @normalize {
    id: id
    label: label
  }
}
`

const queryCountNodes = `
query countAllNodes {
  total(func: has(id)) {
    count(uid)
  }
}
`

const queryCountNoSuccessors = `
query countNodesWithoutSuccessors {
  nodes(func: has(id)) @filter(not has(to)) {
    count(uid)
  }
}
`

const queryCountNoPredecessors = `
query countNodesWithoutPredecessors {
  nodes(func: has(id)) @filter(not has(~to)) {
    count(uid)
  }
}
`

const queryMostNeighbors = `
query findNodesWithMostNeighbors {
  var(func: has(id), orderdesc: unique_neighbors_count, first: 1) {
    max_val as unique_neighbors_count
  }

  nodes_with_most_neighbors(func: eq(unique_neighbors_count, val(max_val))) {
    id
    label
    count: unique_neighbors_count
  }
}
`

const queryCountSingleNeighbor = `
query countNodesWithSingleNeighbor {
  single_neighbor_count(func: eq(unique_neighbors_count, 1)) {
    count(uid)
  }
}
`

const queryRenameUpsert = `
query rename($id: string) {
  node as var(func: eq(id, $id))
}
`
