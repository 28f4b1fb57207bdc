package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/clydemeng/assetsbridge/addressmap"
	"github.com/clydemeng/assetsbridge/core"
	"github.com/clydemeng/assetsbridge/core/vm"
	"github.com/clydemeng/assetsbridge/ledger"
	"github.com/clydemeng/assetsbridge/precompile"
	"github.com/clydemeng/assetsbridge/precompile/assetsfactory"
	"github.com/clydemeng/assetsbridge/precompile/solidity"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var (
	fromFlag = &cli.StringFlag{
		Name:  "from",
		Usage: "Caller address",
		Value: "0x00000000000000000000000000000000000000aa",
	}
	gasFlag = &cli.Uint64Flag{
		Name:  "gas",
		Usage: "Gas limit of each call",
		Value: 1_000_000,
	}
	valueFlag = &cli.StringFlag{
		Name:  "value",
		Usage: "Value transferred with each call",
	}
	staticFlag = &cli.BoolFlag{
		Name:  "static",
		Usage: "Execute as static calls",
	}
)

var selectorsCommand = &cli.Command{
	Name:   "selectors",
	Usage:  "Print the function selectors of the precompile",
	Action: printSelectors,
}

var encodeCommand = &cli.Command{
	Name:      "encode",
	Usage:     "Encode calldata for a precompile function",
	ArgsUsage: "<function> [args...]",
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() < 1 {
			return fmt.Errorf("missing function name")
		}
		data, err := encodeCall(ctx.Args().First(), ctx.Args().Tail())
		if err != nil {
			return err
		}
		fmt.Println(hexutil.Encode(data))
		return nil
	},
}

var callCommand = &cli.Command{
	Name:      "call",
	Usage:     "Run calldata against an in-memory ledger and print the receipts",
	ArgsUsage: "<calldata> [calldata...]",
	Flags:     []cli.Flag{fromFlag, gasFlag, valueFlag, staticFlag},
	Action:    runCalls,
}

var dumpConfigCommand = &cli.Command{
	Name:      "dumpconfig",
	Usage:     "Export the effective configuration to stdout or a file",
	ArgsUsage: "[dumpfile]",
	Action:    dumpConfig,
}

func printSelectors(ctx *cli.Context) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Selector", "Signature", "Mutability"})
	for _, kind := range assetsfactory.Operations() {
		table.Append([]string{kind.Selector().Hex(), kind.Signature(), kind.Mutability()})
	}
	table.Render()
	return nil
}

// makeStack wires the precompile to the reference ledger and runtime.
func makeStack(cfg bridgeConfig) (*core.CallExecutor, *ledger.Ledger, error) {
	l, err := ledger.New(cfg.Ledger)
	if err != nil {
		return nil, nil, err
	}
	ids, err := ledger.NewAssetIDScheme(cfg.AssetIDs)
	if err != nil {
		return nil, nil, err
	}
	mapper, err := addressmap.New(cfg.Mapping)
	if err != nil {
		return nil, nil, err
	}
	rt := precompile.NewRuntime(cfg.Runtime, nil)
	p := assetsfactory.New(cfg.Precompile, l, ids, mapper, rt)
	exec, err := vm.NewExecutor(p)
	if err != nil {
		return nil, nil, err
	}
	return core.NewCallExecutor(exec, l), l, nil
}

func runCalls(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return fmt.Errorf("no calldata given")
	}
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	from := ctx.String(fromFlag.Name)
	if !common.IsHexAddress(from) {
		return fmt.Errorf("invalid caller address %q", from)
	}
	var value *uint256.Int
	if v := ctx.String(valueFlag.Name); v != "" {
		if value, err = uint256.FromDecimal(v); err != nil {
			return fmt.Errorf("invalid value %q: %w", v, err)
		}
	}
	exec, l, err := makeStack(cfg)
	if err != nil {
		return err
	}
	log.Debug("Executing calls", "engine", exec.Engine(), "count", ctx.NArg())

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Function", "Status", "Gas used", "Logs", "Result"})
	var cumulative uint64
	for i, arg := range ctx.Args().Slice() {
		data, err := hexutil.Decode(arg)
		if err != nil {
			return fmt.Errorf("calldata %d: %w", i, err)
		}
		receipt, res, err := exec.ApplyCall(vm.CallMetadata{
			From:     common.HexToAddress(from),
			To:       cfg.Precompile.Address,
			Data:     data,
			Value:    value,
			GasLimit: ctx.Uint64(gasFlag.Name),
			Static:   ctx.Bool(staticFlag.Name),
		}, cumulative)
		if err != nil {
			return err
		}
		cumulative = receipt.CumulativeGasUsed
		table.Append([]string{
			strconv.Itoa(i),
			functionName(data),
			statusString(receipt.Status),
			strconv.FormatUint(receipt.GasUsed, 10),
			strconv.Itoa(len(receipt.Logs)),
			resultString(res),
		})
	}
	table.Render()
	fmt.Printf("assets: %v, cumulative gas: %d\n", l.Assets(), cumulative)
	return nil
}

func functionName(data []byte) string {
	sel, err := solidity.ReadSelector(data)
	if err != nil {
		return "-"
	}
	if kind, ok := assetsfactory.Lookup(sel); ok {
		return kind.String()
	}
	return sel.Hex()
}

func statusString(status uint64) string {
	if status == types.ReceiptStatusSuccessful {
		return "success"
	}
	return "failed"
}

func resultString(res *vm.ExecutionResult) string {
	if !res.Failed() {
		return hexutil.Encode(res.Return())
	}
	if reason, ok := res.RevertReason(); ok {
		return "revert: " + reason
	}
	return res.Err.Error()
}
