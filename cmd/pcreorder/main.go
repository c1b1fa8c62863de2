// Command pcreorder builds a synthetic point cloud and runs it through the
// reordering pipeline: Morton sort, decimation and shuffling.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gogpu/pointcloud"
	"github.com/gogpu/pointcloud/gpu"
	"github.com/gogpu/pointcloud/order"
)

func main() {
	var (
		points  = flag.Int("points", 1_000_000, "number of points")
		keep    = flag.Int("keep-every", 4, "keep every n-th point after sorting")
		seed    = flag.Uint64("seed", 1, "random seed")
		workers = flag.Int("workers", 0, "reorder workers (0 = GOMAXPROCS, 1 = sequential)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	pointcloud.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*points, *keep, *seed, *workers); err != nil {
		log.Fatal(err)
	}
}

func run(points, keep int, seed uint64, workers int) error {
	var opts []pointcloud.CloudOption
	if workers > 0 {
		opts = append(opts, pointcloud.WithWorkers(workers))
	}
	cloud, err := buildCloud(points, seed, opts...)
	if err != nil {
		return fmt.Errorf("build cloud: %w", err)
	}
	defer cloud.Close()

	fmt.Println(cloud)
	for _, f := range cloud.Fields() {
		describe(f)
	}

	ctx := context.Background()
	pos, err := cloud.Field("position")
	if err != nil {
		return err
	}

	start := time.Now()
	perm, err := order.Morton(pos)
	if err != nil {
		return fmt.Errorf("morton: %w", err)
	}
	if err := cloud.Reorder(ctx, perm); err != nil {
		return fmt.Errorf("reorder: %w", err)
	}
	fmt.Printf("morton sort: %v\n", time.Since(start))

	start = time.Now()
	if err := cloud.Select(ctx, order.Decimate(cloud.Len(), keep)); err != nil {
		return fmt.Errorf("decimate: %w", err)
	}
	fmt.Printf("decimate 1/%d: %d points, %v\n", keep, cloud.Len(), time.Since(start))

	start = time.Now()
	if err := cloud.Reorder(ctx, order.Shuffle(cloud.Len(), seed)); err != nil {
		return fmt.Errorf("shuffle: %w", err)
	}
	fmt.Printf("shuffle: %v\n", time.Since(start))

	lo, hi, err := order.Bounds(pos)
	if err != nil {
		return fmt.Errorf("bounds: %w", err)
	}
	fmt.Printf("bounds: %v .. %v\n", lo, hi)
	fmt.Println(cloud)
	return nil
}

func buildCloud(n int, seed uint64, opts ...pointcloud.CloudOption) (*pointcloud.Cloud, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	pos := pointcloud.NewField("position", pointcloud.Float32(3), n)
	color := pointcloud.NewField("color", pointcloud.Uint8(4), n)
	intensity := pointcloud.NewField("intensity", pointcloud.Uint16(1), n)
	tint := pointcloud.NewField("tint", pointcloud.Float32(4), 1)

	for i := range n {
		for a := range 3 {
			pos.SetFloat64(i, a, rng.NormFloat64()*10)
		}
		for c := range 3 {
			color.SetFloat64(i, c, float64(rng.IntN(256)))
		}
		color.SetFloat64(i, 3, 255)
		intensity.SetFloat64(i, 0, float64(rng.IntN(1<<16)))
	}
	for c, v := range []float64{1, 1, 1, 1} {
		tint.SetFloat64(0, c, v)
	}

	cloud := pointcloud.NewCloud(n, opts...)
	for _, f := range []*pointcloud.Field{pos, color, intensity, tint} {
		if err := cloud.Add(f); err != nil {
			cloud.Close()
			return nil, err
		}
	}
	return cloud, nil
}

func describe(f *pointcloud.Field) {
	format := "-"
	if vf, err := gpu.VertexFormat(f.Spec()); err == nil {
		format = vf.String()
	}
	fmt.Printf("  %-24s %-18s %s\n", f, pointcloud.Classify(f.Spec()), format)
}
