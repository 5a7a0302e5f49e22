// n5cat inspects remote N5 hierarchies: existence checks, attribute dumps
// and single-block reads.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	n5 "github.com/hanslovsky/n5-rest"
)

var (
	groupURL       string
	connectTimeout time.Duration
	readTimeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "n5cat [command] [flags]",
	Short: "read-only inspection of N5 hierarchies over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var existsCmd = &cobra.Command{
	Use:   "exists <dataset>",
	Short: "check whether a group or dataset exists",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reader := newReader()
		fmt.Println(reader.Exists(context.Background(), args[0]))
	},
}

var attributesCmd = &cobra.Command{
	Use:   "attributes <dataset>",
	Short: "print the attributes document of a group or dataset",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reader := newReader()
		attrs, err := reader.GetAttributes(context.Background(), args[0])
		if err != nil {
			logrus.WithError(err).Fatal("failed to read attributes")
		}
		for key, value := range attrs {
			fmt.Printf("%s\t%s\n", key, value)
		}
	},
}

var blockCmd = &cobra.Command{
	Use:   "block <dataset> <g0> [g1 ...]",
	Short: "read one block at a grid position and print a summary",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		gridPosition := make([]int64, len(args)-1)
		for i, arg := range args[1:] {
			p, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				logrus.WithError(err).Fatalf("invalid grid coordinate %q", arg)
			}
			gridPosition[i] = p
		}

		reader := newReader()
		ctx := context.Background()
		attrs, err := reader.GetDatasetAttributes(ctx, args[0])
		if err != nil {
			logrus.WithError(err).Fatal("failed to read dataset attributes")
		}
		block, err := reader.ReadBlock(ctx, args[0], attrs, gridPosition)
		if err != nil {
			logrus.WithError(err).Fatal("failed to read block")
		}

		fmt.Printf("dataset: %s\n", args[0])
		fmt.Printf("dataType: %s\n", attrs.DataType)
		fmt.Printf("gridPosition: %v\n", block.GridPosition)
		fmt.Printf("size: %v\n", block.Size)
		fmt.Printf("elements: %d\n", block.NumElements())
	},
}

func newReader() *n5.Reader {
	if groupURL == "" {
		logrus.Fatal("--url is required")
	}
	return n5.NewReader(groupURL,
		n5.WithConnectTimeout(connectTimeout),
		n5.WithReadTimeout(readTimeout),
	)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&groupURL, "url", "u", "", "base URL of the N5 group")
	rootCmd.PersistentFlags().DurationVar(&connectTimeout, "connect-timeout", 20*time.Second, "timeout for establishing connections")
	rootCmd.PersistentFlags().DurationVar(&readTimeout, "read-timeout", 20*time.Second, "timeout for reading a full response")

	rootCmd.AddCommand(existsCmd)
	rootCmd.AddCommand(attributesCmd)
	rootCmd.AddCommand(blockCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
