// mc/summary.go
package mc

import "fmt"

// PrintSummary prints the startup "INPUT SUMMARY" banner, restored
// from original_source/src/io.c's print_params/border_print/
// fancy_int/center_print. It runs once before the batch loop begins.
func PrintSummary(p Parameters, geom Geometry, mat Material) {
	border()
	centered("INPUT SUMMARY", 79)
	border()
	fmt.Printf("Number of particles:            %s\n", fancyInt(p.NParticles))
	fmt.Printf("Number of batches:              %d\n", p.NBatches)
	fmt.Printf("Number of active batches:       %d\n", p.NActive)
	fmt.Printf("Number of generations:          %d\n", p.NGenerations)
	fmt.Printf("Boundary conditions:            %s\n", geom.BC)
	fmt.Printf("Number of nuclides in material: %d\n", mat.NNuclides)
	fmt.Printf("RNG seed:                       %d\n", p.Seed)
	border()
}

func border() {
	fmt.Println("====================================================================================")
}

func centered(s string, width int) {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	for i := 0; i <= pad; i++ {
		fmt.Print(" ")
	}
	fmt.Println(s)
}

// fancyInt comma-groups a as io.c's fancy_int did.
func fancyInt(a int64) string {
	if a < 0 {
		return fmt.Sprintf("%d", a)
	}
	s := fmt.Sprintf("%d", a)
	n := len(s)
	if n <= 3 {
		return s
	}

	var groups []string
	for n > 3 {
		groups = append([]string{s[n-3:]}, groups...)
		s = s[:n-3]
		n = len(s)
	}
	groups = append([]string{s}, groups...)

	out := groups[0]
	for _, g := range groups[1:] {
		out += "," + g
	}
	return out
}
