package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"auditsystem/internal/ledger"
)

// Excel 模板的列顺序，第一行是表头
// 日期 | 说明 | 凭证号 | 科目编码 | 科目名称 | 借方 | 贷方
const (
	colDate = iota
	colDescription
	colReference
	colAccountCode
	colAccountName
	colDebit
	colCredit
)

// ParseXLSX 解析 Excel 账套模板，取第一个工作表
func ParseXLSX(r io.Reader) ([]ledger.RawRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("Excel 文件打开失败: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("Excel 文件里没有工作表")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("工作表里没有数据行")
	}

	records := make([]ledger.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] { // 跳过表头
		if isBlankRow(row) {
			continue
		}
		records = append(records, ledger.RawRecord{
			Date:        cell(row, colDate),
			Description: cell(row, colDescription),
			Reference:   cell(row, colReference),
			AccountCode: cell(row, colAccountCode),
			AccountName: cell(row, colAccountName),
			Debit:       cell(row, colDebit),
			Credit:      cell(row, colCredit),
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("工作表里没有数据行")
	}

	return records, nil
}

// cell 取指定列，短行按空串处理（excelize 会裁掉行尾空单元格）
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
