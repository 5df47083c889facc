/*
Package synthaser classifies multi-domain synthase proteins from conserved
domain search hits.

It runs a two stage pipeline over a batch of query sequences. First, the raw,
overlapping hit records of each query are collapsed into an ordered list of
non-overlapping domains, each with a semantic type taken from a domain
catalog. Then a forest of boolean rules is evaluated against every domain
architecture to assign one or more classification paths, such as
"PKS > Type I PKS > HR-PKS".

# Concept

The core is pure computation over in-memory data. Rule sets, catalogs, hit
batches and result persistence are collaborators reached through the
interfaces in pkg/ports, so the same Engine serves the CLI, the HTTP API and
embedding hosts.

# Usage

	eng, err := synthaser.New(
		synthaser.WithWorkers(8),
		synthaser.WithLogger(logger),
	)
	if err != nil {
		log.Fatal(err)
	}

	report, err := eng.Run(ctx, []synthaser.Query{
		{ID: "seq1", Hits: hits},
	})
	if err != nil {
		log.Fatal(err)
	}
	for _, s := range report.Sequences {
		fmt.Println(s.ID, s.Architecture(), s.LabelPaths)
	}

Without options the Engine uses the default catalog and the embedded default
rule set. A malformed rule set fails New; a malformed hit fails the whole Run
before any sequence is classified.
*/
package synthaser
