package ingest

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"auditsystem/internal/ledger"
)

// ============================================================================
// e-Defter XML 解析
// ============================================================================
//
// 客户上传的电子账簿（e-Defter）结构：
//
//   <JournalEntry>
//     <Date>2024-01-05</Date>
//     <Description>Kira ödemesi</Description>
//     <Reference>MAK-001</Reference>
//     <Line>
//       <AccountID>100</AccountID>
//       <AccountName>Kasa</AccountName>
//       <DebitAmount>0</DebitAmount>
//       <CreditAmount>25000</CreditAmount>
//     </Line>
//     ...
//   </JournalEntry>
//
// JournalEntry 节点可能埋在任意外层节点下，所以用 token 流查找
// 而不是按固定的根结构解码。金额保留文本交给 ledger.Normalize，
// 坏数字由它统一拒绝。
//
// ============================================================================

type xmlJournalEntry struct {
	Date        string    `xml:"Date"`
	Description string    `xml:"Description"`
	Reference   string    `xml:"Reference"`
	Lines       []xmlLine `xml:"Line"`
}

type xmlLine struct {
	AccountID    string `xml:"AccountID"`
	AccountName  string `xml:"AccountName"`
	Description  string `xml:"Description"`
	DebitAmount  string `xml:"DebitAmount"`
	CreditAmount string `xml:"CreditAmount"`
}

// ParseXML 把 e-Defter XML 展开成原始分录记录
func ParseXML(r io.Reader) ([]ledger.RawRecord, error) {
	decoder := xml.NewDecoder(r)
	records := make([]ledger.RawRecord, 0, 64)
	entryCount := 0

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("XML 解析失败: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "JournalEntry" {
			continue
		}

		var entry xmlJournalEntry
		if err := decoder.DecodeElement(&entry, &start); err != nil {
			return nil, fmt.Errorf("JournalEntry 节点解析失败: %w", err)
		}
		entryCount++

		for _, line := range entry.Lines {
			desc := strings.TrimSpace(line.Description)
			if desc == "" {
				desc = strings.TrimSpace(entry.Description)
			}
			records = append(records, ledger.RawRecord{
				Date:        strings.TrimSpace(entry.Date),
				Description: desc,
				Reference:   strings.TrimSpace(entry.Reference),
				AccountCode: strings.TrimSpace(line.AccountID),
				AccountName: strings.TrimSpace(line.AccountName),
				Debit:       strings.TrimSpace(line.DebitAmount),
				Credit:      strings.TrimSpace(line.CreditAmount),
			})
		}
	}

	if entryCount == 0 {
		return nil, fmt.Errorf("文件里没有找到 JournalEntry 节点")
	}

	return records, nil
}
