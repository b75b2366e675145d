package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ranksplit/arith"
)

func main() {
	log.SetFlags(0)
	var (
		inname   string
		prec     int
		round    int
		nl, echo bool
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.IntVar(&prec, "p", 64, "precision of calculations in bits")
	flag.IntVar(&round, "round", arith.DefaultRound, "decimal places in results (0 or less rounds to an integer)")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	flag.BoolVar(&echo, "echo", false, "print rebalanced trees")
	flag.Parse()
	if prec < 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}

	var ins []io.RuneScanner
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, strings.NewReader(arg))
	}

	var opts []arith.ParseOption
	if nl {
		opts = append(opts, arith.StopOn('\n'))
	}
	var p []*arith.Expr
	for _, in := range ins {
		for {
			// First check whether we're done with the input.
			if _, _, err := in.ReadRune(); err != nil {
				if err == io.EOF {
					break
				}
				log.Fatal(err)
			}
			in.UnreadRune()
			a, err := arith.Parse(in, opts...)
			if err != nil {
				log.Fatal(err)
			}
			p = append(p, a)
		}
	}

	ctx := arith.NewContext(arith.Prec(uint(prec)), arith.Round(round))
	for _, a := range p {
		if echo {
			fmt.Printf("%v : ", a)
		}
		r := ctx.Eval(a)
		if r == nil {
			fmt.Println(ctx.Err())
			continue
		}
		fmt.Println(ctx.Format(r))
	}
}

func infile(inname string, std bool) (io.RuneScanner, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	return bufio.NewReader(f), nil
}
