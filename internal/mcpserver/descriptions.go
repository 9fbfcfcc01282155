package mcpserver

// Tool descriptions with interpretation guidance for LLMs.

func describeSummary() string {
	return `Summarizes the structure of Fortran 90 sources: file counts, code blocks by kind and declared variables by built-in data type.

USE WHEN:
- Getting a first overview of an unfamiliar Fortran code base
- Checking how much of a project is modules versus loose programs and subroutines
- Comparing the size of two source trees or two revisions
- Finding files the parser could not handle

INTERPRETING RESULTS:
- fortran_files_failed_to_parse > 0: some files have unbalanced block openers and closers; use fortran_variables to see which
- code_block_type_summary counts every nested block by default; set top_level_blocks to count only the outermost blocks of each file
- variable_data_type_summary matches by substring, so INTEGER(I8) counts as integer and DOUBLE COMPLEX also counts as complex
- coverage.ratio well below 1.0 means many statements sit outside any program, module or subprogram
- block_lengths.p90 shows how long the longest blocks are, counted in source lines

METRICS RETURNED:
- file_count, fortran_file_count, fortran_files_failed_to_parse, comment_count
- code_block_type_summary: do loops, functions, if blocks, interfaces, modules, programs, subroutines, derived types
- variable_data_type_summary: character, complex, double complex, double precision, integer, logical, real
- block_lengths: count, min, max, mean, std_dev, median, p90
- coverage: statement_lines, covered_lines, ratio`
}

func describeVariables() string {
	return `Lists every code block of each Fortran file with its nested blocks and declared variables.

USE WHEN:
- Looking up where a variable is declared and with which type and attributes
- Reviewing the subprogram tree of a module
- Finding recursive subroutines and functions
- Auditing arrays and pointers in a module

INTERPRETING RESULTS:
- A block lists every declaration inside it, including those of nested blocks, unless no_duplicates is set
- With no_duplicates each variable appears once, under the innermost block that declares it
- is_recursive and subprogram_count are present only for kinds that carry them
- Files with failed_parse set have no components; parse_error explains why
- diagnostics lists declarations that could not be read and were skipped

METRICS RETURNED:
- Per file: path, failed_parse, component_count, components
- Per component: kind, name, start_line, end_line, is_recursive, subprograms, variable_count
- Per variable: name, data_type, attributes, line_declared, is_array, is_pointer`
}

func describeRawContents() string {
	return `Returns the logical statements of each Fortran file after continuation lines are joined and semicolon separated statements are split.

USE WHEN:
- Inspecting how the parser sees a file before blaming a count
- Feeding normalized Fortran statements to another tool
- Debugging continuation or comment handling

INTERPRETING RESULTS:
- Each entry is one statement; inline comments stay attached to their statement
- Empty strings are blank lines
- Files with failed_parse set have no contents

METRICS RETURNED:
- file_count, fortran_file_count, fortran_files_failed_to_parse
- Per file: path, failed_parse, contents`
}
