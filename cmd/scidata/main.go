// Command scidata inspects, converts and validates saved data records.
package main

func main() {
	Execute()
}
