// Package md2gb rewrites American-English spelling to British-English
// spelling inside markdown documents without touching code, URLs or colour
// markup.
//
// # Quick Start
//
// Create a converter once and reuse it; it is safe for concurrent use:
//
//	conv, err := md2gb.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2gb.Input{
//	    Markdown: "We optimize colors. `color = red` stays.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Markdown) // We optimise colours. `color = red` stays.
//	fmt.Println(result.Count)    // 2
//
// # Conversion Pipeline
//
//  1. Protected regions are found: fenced code, inline code, bare URLs,
//     `color:#hex` declarations and `color="..."` attributes
//  2. Overlapping regions are merged into a sorted, non-overlapping set
//  3. Each rule of the ordered rule table is applied right to left, skipping
//     matches inside a region or near a preserve phrase
//     ("GitHub organization", ...)
//  4. The first letter's case of every match is carried to its replacement
//
// Regions are computed once, on the original document. Later rules run on
// text already rewritten by earlier ones, so region offsets may drift when a
// rewrite changes the length of the text. WithRegionRefresh rescans before
// every rule instead.
//
// # Configuration
//
// Use functional options to customise the converter:
//
//	conv, err := md2gb.NewConverter(
//	    md2gb.WithWindowSize(50),
//	    md2gb.WithExtraPreservePhrases(`color picker`),
//	    md2gb.WithExtraRules(md2gb.Rule{From: "catalog", To: "catalogue"}),
//	    md2gb.WithVerify(true),
//	)
//
// # Error Handling
//
// Configuration errors are returned by NewConverter and match the sentinel
// errors with errors.Is:
//
//	if errors.Is(err, md2gb.ErrInvalidRule) {
//	    // fix the rule table
//	}
//
// Convert only fails on input that is not valid UTF-8, on a cancelled
// context, or when verification detects altered code or links.
package md2gb
