// Command searchcore-demo wires the Term Index, Numeric Range Trie,
// Sorted Integer Array, Or-Iterator, and rule engine together over a
// tiny in-memory catalog, to exercise a full query end to end: tokenize
// -> synonym reduction -> curation evaluation -> per-token posting
// union -> numeric filter intersection -> curated result splice.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/arcfts/searchcore/art"
	"github.com/arcfts/searchcore/internal/obs"
	"github.com/arcfts/searchcore/internal/outcome"
	"github.com/arcfts/searchcore/numtrie"
	"github.com/arcfts/searchcore/oriter"
	"github.com/arcfts/searchcore/rules/curation"
	"github.com/arcfts/searchcore/rules/manager"
	"github.com/arcfts/searchcore/rules/synonym"
	"github.com/arcfts/searchcore/rules/tokenize"
	"github.com/arcfts/searchcore/searchctx"

	"go.uber.org/zap"
)

// doc is one row of the demo catalog.
type doc struct {
	id    uint32
	title string
	price int64
}

var catalog = []doc{
	{1, "red running shoes", 59},
	{2, "blue running shoes", 49},
	{3, "red dress shoes", 89},
	{4, "new york city t-shirt", 25},
	{5, "ipod classic", 199},
}

func main() {
	logger, _ := zap.NewDevelopment()
	obs.SetLogger(logger)
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	store := newMemStore()

	terms := &art.Tree{}
	prices := numtrie.New(numtrie.Width64)
	for _, d := range catalog {
		for pos, tok := range tokenize.Tokens(d.title, nil) {
			terms.Insert([]byte(tok), d.id, 1.0, []uint32{uint32(pos)})
		}
		prices.Insert(d.price, d.id)
	}

	syn := synonym.New("catalog", store)
	must(syn.AddRule(ctx, &synonym.Synonym{
		ID:       "nyc-rule",
		Root:     []string{"nyc"},
		Synonyms: [][]string{{"new", "york"}},
	}))
	must(syn.AddRule(ctx, &synonym.Synonym{
		ID:       "ipod-rule",
		Synonyms: [][]string{{"ipod"}, {"i", "pod"}, {"pod"}},
	}))

	cur := curation.New("catalog", store)
	must(cur.AddRule(ctx, &curation.Curation{
		ID:             "pin-budget-shoes",
		Rule:           curation.Rule{Query: "shoes", Match: curation.MatchContains},
		Includes:       []curation.Include{{ID: "2", Position: 1}},
		StopProcessing: true,
	}))

	mgr := manager.NewCurationIndexManager(store)
	regIdx, err := mgr.Upsert(ctx, "catalog")
	must(err)
	must(regIdx.LoadFromStore(ctx))
	fmt.Printf("curation index %q holds %d rule(s) after reload from store\n", "catalog", len(regIdx.List()))

	runQuery(terms, prices, syn, cur, "red nyc shoes", 100)
	runQuery(terms, prices, syn, cur, "ipod", 0)
}

// runQuery resolves rawQuery end to end: synonym-expand the tokens,
// evaluate curation rules, union each token variant's postings, narrow
// by maxPrice (0 means no cap) via the Numeric Range Trie, then splice
// in any pinned includes.
func runQuery(terms *art.Tree, prices *numtrie.Trie, syn *synonym.Index, cur *curation.Index, rawQuery string, maxPrice int64) {
	budget := searchctx.NewBudget(0)
	tokens := tokenize.Tokens(rawQuery, nil)
	fmt.Printf("\nquery %q -> tokens %v\n", rawQuery, tokens)

	variants := syn.Reduce(tokens, 0)
	variants = append(variants, tokens)

	decision := cur.Evaluate(curation.Query{Tokens: tokens}, 0)
	if len(decision.Matched) > 0 {
		fmt.Printf("curation rules matched: %v\n", decision.Matched)
	}

	var priceFilter oriter.Filter
	if maxPrice > 0 {
		priceFilter = oriter.BitmapFilter{Bitmap: prices.SearchLessThan(maxPrice, true)}
	}

	seen := map[uint32]struct{}{}
	var ordered []uint32
	for _, variant := range variants {
		sources := make([]oriter.Source, 0, len(variant))
		for _, tok := range variant {
			posting := terms.Search([]byte(tok))
			if posting == nil {
				continue
			}
			sources = append(sources, oriter.NewArraySource(posting.IDs()))
		}
		if len(sources) == 0 {
			continue
		}
		base := oriter.New(sources, budget)
		it := oriter.NewFilterIterator(base, priceFilter, nil)
		for it.Next() {
			id, ok := it.ID()
			if !ok {
				break
			}
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				ordered = append(ordered, id)
			}
		}
	}

	strIDs := make([]string, len(ordered))
	for i, id := range ordered {
		strIDs[i] = fmt.Sprint(id)
	}
	final := curation.ApplyIncludes(strIDs, decision.Includes, func(string) bool { return true })

	fmt.Printf("matching doc ids (post-curation, price <= %d): %v\n", maxPrice, final)
}

func must(err *outcome.Outcome) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
