// Command pagedb-layout prints the on-disk struct layout sizes used by the
// core, and optionally lists the classes registered in a database file.
// It replaces the teacher's cli/main.go unsafe.Sizeof diagnostic, extended
// with the class-listing the original database.hpp's PrintAllClasses
// supports.
package main

import (
	"fmt"
	"os"
	"unsafe"

	"pagedb"
	"pagedb/storage"
)

func main() {
	fmt.Printf("PageHeader  serialized: %d bytes, in-memory: %d bytes\n",
		pagedb.PageHeaderSize, unsafe.Sizeof(pagedb.PageHeader{}))
	fmt.Printf("ClassHeader serialized: %d bytes, in-memory: %d bytes\n",
		pagedb.ClassHeaderSize, unsafe.Sizeof(pagedb.ClassHeader{}))
	fmt.Printf("Superblock  serialized: %d bytes (= default pagetable origin)\n",
		pagedb.SuperblockSize)
	fmt.Printf("PageSize: %d bytes, max descriptor size: %d bytes\n",
		pagedb.PageSize, pagedb.PageSize-pagedb.ClassHeaderSize)

	if len(os.Args) < 2 {
		return
	}

	path := os.Args[1]
	f, err := storage.Open(path, 0644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open:", err)
		os.Exit(1)
	}
	defer f.Close()

	db, err := pagedb.Open(f, pagedb.Read, nil, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open database:", err)
		os.Exit(1)
	}
	defer db.Close()

	lines, err := db.PrintAllClasses(pagedb.PrintFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "list classes:", err)
		os.Exit(1)
	}
	for _, line := range lines {
		fmt.Println(line)
	}
}
