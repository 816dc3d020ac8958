// Package network generates the synthetic directed networks used by the
// sensitivity analysis.
//
// Two models are supported:
//
//   - [GNP]: every ordered vertex pair is an edge with probability p.
//   - [BarabasiAlbert]: vertices arrive one at a time and attach m outgoing
//     edges to earlier vertices with probability proportional to in-degree+1.
//
// All randomness comes from the *rand.Rand passed by the caller, so a run is
// reproducible from its seed and no package-level random state exists.
//
//	rng := rand.New(rand.NewPCG(123, 123^0xdeadbeef))
//	g, err := network.GNP(rng, 45, 0.05)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(g.Order(), g.Size())
//
// Neither generator produces self-loops or parallel edges; the backing gonum
// graph cannot hold them.
package network
