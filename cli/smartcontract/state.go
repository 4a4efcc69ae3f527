package smartcontract

import (
	"fmt"
	"io"
	"math/big"
	"sort"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/alephium-go/cli/cmdargs"
	"github.com/nspcc-dev/alephium-go/cli/options"
	"github.com/nspcc-dev/alephium-go/pkg/contract"
	"github.com/nspcc-dev/alephium-go/pkg/noderpc"
	"github.com/nspcc-dev/alephium-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/alephium-go/pkg/smartcontract"
	json "github.com/nspcc-dev/go-ordered-json"
	"github.com/urfave/cli"
)

func contractState(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.NewExitError(errNoAddress, 1)
	}
	c, exitErr := readContract(ctx)
	if exitErr != nil {
		return exitErr
	}
	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()

	e, exitErr := options.NewEnv(gctx, ctx)
	if exitErr != nil {
		return exitErr
	}
	defer e.Close()

	st, err := contract.FetchState(gctx, e.Client, c, ctx.Args().First())
	if err != nil {
		return cli.NewExitError(fmt.Errorf("failed to get contract state: %w", err), 1)
	}
	return printJSON(ctx.App.Writer, json.OrderedObject{
		{Key: "address", Value: st.Address},
		{Key: "contractId", Value: st.ContractID},
		{Key: "codeHash", Value: st.CodeHash},
		{Key: "initialStateHash", Value: st.InitialStateHash},
		{Key: "fields", Value: namedObject(st.Fields, c.FieldsSig().Names)},
		{Key: "asset", Value: assetObject(st.Asset)},
	})
}

func contractCall(ctx *cli.Context) error {
	switch ctx.NArg() {
	case 0:
		return cli.NewExitError(errNoAddress, 1)
	case 1:
		return cli.NewExitError(errNoMethod, 1)
	}
	c, exitErr := readContract(ctx)
	if exitErr != nil {
		return exitErr
	}
	var (
		addr   = ctx.Args().Get(0)
		method = ctx.Args().Get(1)
	)
	fn, _, err := c.Function(method)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	args, err := cmdargs.ParseNamedVals(ctx.Args()[2:], fn.ParamNames, fn.ParamTypes)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("invalid arguments: %w", err), 1)
	}
	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()

	e, exitErr := options.NewEnv(gctx, ctx)
	if exitErr != nil {
		return exitErr
	}
	defer e.Close()

	var inv *invoker.Invoker
	if block := ctx.String("historic"); block != "" {
		inv = invoker.NewHistoricAtBlock(block, e.Client, nil)
	} else {
		inv = invoker.New(e.Client, nil)
	}
	res, err := inv.Call(gctx, c, addr, method, args)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("call failed: %w", err), 1)
	}
	events := make([]any, 0, len(res.Events))
	for _, ev := range res.Events {
		var names []string
		if sig, ok := c.Event(ev.EventIndex); ok && ev.ContractAddress == addr {
			names = sig.FieldNames
		}
		events = append(events, json.OrderedObject{
			{Key: "contractAddress", Value: ev.ContractAddress},
			{Key: "name", Value: ev.Name},
			{Key: "fields", Value: namedObject(ev.Fields, names)},
		})
	}
	return printJSON(ctx.App.Writer, json.OrderedObject{
		{Key: "returns", Value: plainValue(res.Returns)},
		{Key: "gasUsed", Value: res.GasUsed},
		{Key: "events", Value: events},
	})
}

func printJSON(w io.Writer, v any) error {
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(w, string(bs))
	return nil
}

// namedObject orders values by names, values missing from names follow
// sorted by key.
func namedObject(vals smartcontract.NamedVals, names []string) json.OrderedObject {
	var (
		res  = make(json.OrderedObject, 0, len(vals))
		seen = make(map[string]bool, len(names))
	)
	for _, n := range names {
		if v, ok := vals[n]; ok {
			res = append(res, json.Member{Key: n, Value: plainValue(v)})
			seen[n] = true
		}
	}
	rest := make([]string, 0, len(vals)-len(seen))
	for k := range vals {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		res = append(res, json.Member{Key: k, Value: plainValue(vals[k])})
	}
	return res
}

func assetObject(a noderpc.Asset) json.OrderedObject {
	tokens := make([]any, 0, len(a.Tokens))
	for _, t := range a.Tokens {
		tokens = append(tokens, json.OrderedObject{
			{Key: "id", Value: t.ID},
			{Key: "amount", Value: t.Amount},
		})
	}
	return json.OrderedObject{
		{Key: "attoAlphAmount", Value: a.AttoAlphAmount},
		{Key: "tokens", Value: tokens},
	}
}

// plainValue converts decoded values into JSON-friendly ones, numbers are
// printed as decimal strings.
func plainValue(v any) any {
	switch v := v.(type) {
	case *uint256.Int:
		return v.ToBig().String()
	case *big.Int:
		return v.String()
	case []any:
		res := make([]any, len(v))
		for i := range v {
			res[i] = plainValue(v[i])
		}
		return res
	}
	return v
}
