package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ============================================================================
// 风险检测引擎
// ============================================================================
//
// 对排好序的分录做一次前向扫描，期间维护现金科目的滚动余额。
// 五条规则互相独立，同一条分录可以同时命中多条。
//
// 【关键点】确定性：规则没有随机性，也没有跨调用的状态，
// 同样的有序输入永远产出同样的发现列表（条数、类别、金额全同）。
// 引擎本身不去重 —— 重分析时替换还是追加由调用方决定。
//
// ============================================================================

// Detector 风险检测引擎，参数来自配置，一个实例可以复用
type Detector struct {
	cfg RuleConfig
}

func NewDetector(cfg RuleConfig) *Detector {
	return &Detector{cfg: cfg}
}

// Detect 扫描有序分录，产出风险发现
//
// 规则（按扫描中的求值顺序）：
//  1. 现金负余额：现金分录逐笔累加 借−贷，累加后余额为负立即产出 Kritik
//  2. 凭证限额：现金分录 max(借,贷) 超过 tevsik 下限产出 Uyarı
//  3. 大额现金：现金分录 max(借,贷) 超过预警线产出 Uyarı
//  4. 凭证缺失：扫描完后，说明和凭证号都为空的分录数 > 0 产出一条 Bilgi
//  5. 股东往来：扫描完后，131 科目净额（借−贷）严格为正产出一条 Bilgi
func (d *Detector) Detect(entries []Entry) []Finding {
	findings := make([]Finding, 0)

	cashBalance := decimal.Zero
	relatedNet := decimal.Zero
	missingDoc := 0

	for _, e := range entries {
		if e.AccountCode == d.cfg.CashAccount {
			cashBalance = cashBalance.Add(e.Net())

			if cashBalance.IsNegative() {
				findings = append(findings, d.cashReversedFinding(e, cashBalance))
			}

			maxAmount := decimal.Max(e.Debit, e.Credit)
			if maxAmount.GreaterThan(d.cfg.CashThreshold) {
				findings = append(findings, d.cashThresholdFinding(e, maxAmount))
			}
			if maxAmount.GreaterThan(d.cfg.LargeCashThreshold) {
				findings = append(findings, d.largeCashFinding(e, maxAmount))
			}
		}

		if e.AccountCode == d.cfg.RelatedPartyAccount {
			relatedNet = relatedNet.Add(e.Net())
		}

		if e.Description == "" && e.Reference == "" {
			missingDoc++
		}
	}

	if missingDoc > 0 {
		findings = append(findings, d.missingDocFinding(missingDoc))
	}

	// 股东往来只看整个期间的净额：净借方余额意味着公司把钱借给了股东
	if relatedNet.IsPositive() {
		findings = append(findings, d.relatedPartyFinding(relatedNet))
	}

	return findings
}

// cashReversedFinding 现金负余额
// 现金账户不可能真的是负的，这是有税务稽查意义的结构性记账错误。
// Amount 保留负值，呈现层据此着色。
func (d *Detector) cashReversedFinding(e Entry, balance decimal.Decimal) Finding {
	date := e.Date
	return Finding{
		Severity: SeverityCritical,
		Category: CategoryCashReversed,
		Title:    "Kasa hesabı negatif bakiyeye düştü",
		Description: fmt.Sprintf(
			"%s tarihli işlem sonrası kasa bakiyesi %s TL'ye düştü. Fiziksel kasada olmayan para çıkışa kaydedilmiş görünüyor.",
			e.Date.Format(DateLayout), FormatTL(balance)),
		Detail:      "Kasa hesabı fiilen negatif olamaz; ters bakiye VUK açısından ciddi bir kayıt düzeni hatasıdır ve incelemede re'sen tarhiyat gerekçesi sayılabilir.",
		Amount:      balance,
		PenaltyRisk: balance.Abs(),
		AccountCode: e.AccountCode,
		Date:        &date,
	}
}

// cashThresholdFinding 超过凭证限额的现金收付
func (d *Detector) cashThresholdFinding(e Entry, amount decimal.Decimal) Finding {
	date := e.Date
	return Finding{
		Severity: SeverityWarning,
		Category: CategoryCashThreshold,
		Title:    fmt.Sprintf("%s TL üzeri nakit işlem", FormatTL(d.cfg.CashThreshold)),
		Description: fmt.Sprintf(
			"%s tarihinde %s TL tutarında nakit işlem tespit edildi. Tevsik zorunluluğu kapsamında bu tutarın banka kanalıyla ödenmesi veya tahsil edilmesi gerekirdi.",
			e.Date.Format(DateLayout), FormatTL(amount)),
		Detail:      "Tevsik sınırını aşan nakit ödemeler gider veya indirim olarak kabul edilmeyebilir ve özel usulsüzlük cezası doğurabilir.",
		Amount:      amount,
		PenaltyRisk: amount,
		AccountCode: e.AccountCode,
		Date:        &date,
	}
}

// largeCashFinding 大额现金变动
func (d *Detector) largeCashFinding(e Entry, amount decimal.Decimal) Finding {
	date := e.Date
	return Finding{
		Severity: SeverityWarning,
		Category: CategoryLargeCash,
		Title:    "Olağandışı büyük nakit hareketi",
		Description: fmt.Sprintf(
			"%s tarihinde %s TL tutarında nakit hareket tespit edildi. Belge ile desteklenmeyen büyük nakit hareketleri vergi incelemesinde sorun yaratabilir.",
			e.Date.Format(DateLayout), FormatTL(amount)),
		Detail:      "Olağandışı büyüklükteki nakit hareketler kaynağı ve kullanım yeri açısından açıklanabilir olmalıdır.",
		Amount:      amount,
		AccountCode: e.AccountCode,
		Date:        &date,
	}
}

// missingDocFinding 凭证要素缺失
func (d *Detector) missingDocFinding(count int) Finding {
	return Finding{
		Severity:    SeverityInfo,
		Category:    CategoryMissingDoc,
		Title:       fmt.Sprintf("%d adet işlemde belge eksikliği riski", count),
		Description: "Bazı kayıtlarda açıklama ve referans numarası bulunmuyor. İnceleme sırasında bu işlemler için belge talep edilebilir.",
		Detail:      "VUK uyarınca her kayıt tevsik edici bir belgeye dayanmalıdır.",
		Amount:      decimal.NewFromInt(int64(count)),
	}
}

// relatedPartyFinding 股东往来净借方余额
func (d *Detector) relatedPartyFinding(net decimal.Decimal) Finding {
	return Finding{
		Severity: SeverityInfo,
		Category: CategoryRelatedParty,
		Title:    "Ortaklardan alacaklar borç bakiyesi veriyor",
		Description: fmt.Sprintf(
			"Ortaklar cari hesabının dönem net bakiyesi %s TL borç yönündedir. Ortaklara aktarılan fonlar için adat faizi hesaplanması gerekebilir.",
			FormatTL(net)),
		Detail:      "Ortaklardan alacaklar, transfer fiyatlandırması yoluyla örtülü kazanç dağıtımı sayılabilir; adat faizi ve buna bağlı KDV riski doğurur.",
		Amount:      net,
		AccountCode: d.cfg.RelatedPartyAccount,
	}
}
