package ingest

import (
	"auditsystem/internal/ledger"
)

// DemoRecords 演示账套
//
// 2024 年 1-2 月的一套土耳其小企业日记账，特意埋了几个教学用的
// 风险点：现金负余额、超限额现金收付、大额现金提取、股东借款、
// 凭证要素缺失。客户没有真实数据时用它体验完整分析流程。
func DemoRecords() []ledger.RawRecord {
	return []ledger.RawRecord{
		// 1月5日 房租付现
		{Date: "2024-01-05", Reference: "MAK-001", AccountCode: "770", AccountName: "Genel Yönetim Giderleri", Description: "Ocak ayı kira", Debit: "25000"},
		{Date: "2024-01-05", Reference: "MAK-001", AccountCode: "100", AccountName: "Kasa", Description: "Kira ödemesi", Credit: "25000"},

		// 1月8日 现销收入
		{Date: "2024-01-08", Reference: "SAT-045", AccountCode: "100", AccountName: "Kasa", Description: "Peşin satış", Debit: "150000"},
		{Date: "2024-01-08", Reference: "SAT-045", AccountCode: "600", AccountName: "Yurt İçi Satışlar", Description: "Satış matrahı", Credit: "127118.64"},
		{Date: "2024-01-08", Reference: "SAT-045", AccountCode: "391", AccountName: "Hesaplanan KDV", Description: "KDV %18", Credit: "22881.36"},

		// 1月10日 赊购商品
		{Date: "2024-01-10", Reference: "ALM-023", AccountCode: "153", AccountName: "Ticari Mallar", Description: "Mal alımı", Debit: "80000"},
		{Date: "2024-01-10", Reference: "ALM-023", AccountCode: "191", AccountName: "İndirilecek KDV", Description: "KDV %18", Debit: "14400"},
		{Date: "2024-01-10", Reference: "ALM-023", AccountCode: "320", AccountName: "Satıcılar", Description: "Vadeli alım", Credit: "94400"},

		// 1月12日 借款给股东
		{Date: "2024-01-12", Reference: "ORT-001", AccountCode: "131", AccountName: "Ortaklardan Alacaklar", Description: "Ortağa verilen borç", Debit: "150000"},
		{Date: "2024-01-12", Reference: "ORT-001", AccountCode: "102", AccountName: "Bankalar", Description: "Banka çıkışı", Credit: "150000"},

		// 1月15日 超过凭证限额的现金收款
		{Date: "2024-01-15", Reference: "SAT-067", AccountCode: "100", AccountName: "Kasa", Description: "Nakit tahsilat", Debit: "45000"},
		{Date: "2024-01-15", Reference: "SAT-067", AccountCode: "600", AccountName: "Yurt İçi Satışlar", Description: "Satış matrahı", Credit: "38135.59"},
		{Date: "2024-01-15", Reference: "SAT-067", AccountCode: "391", AccountName: "Hesaplanan KDV", Description: "KDV %18", Credit: "6864.41"},

		// 1月18日 凭证要素缺失的杂项支出
		{Date: "2024-01-18", AccountCode: "689", AccountName: "Diğer Olağandışı Gider", Debit: "1250"},
		{Date: "2024-01-18", AccountCode: "100", AccountName: "Kasa", Credit: "1250"},

		// 1月20日 工资发放
		{Date: "2024-01-20", Reference: "MAA-001", AccountCode: "770", AccountName: "Genel Yönetim Giderleri", Description: "Maaş gideri", Debit: "120000"},
		{Date: "2024-01-20", Reference: "MAA-001", AccountCode: "360", AccountName: "Ödenecek Vergi ve Fonlar", Description: "Gelir stopajı", Credit: "18000"},
		{Date: "2024-01-20", Reference: "MAA-001", AccountCode: "361", AccountName: "Ödenecek Sosyal Güvenlik Kesintileri", Description: "SGK işçi payı", Credit: "17000"},
		{Date: "2024-01-20", Reference: "MAA-001", AccountCode: "102", AccountName: "Bankalar", Description: "Net ödeme", Credit: "85000"},

		// 1月22日 电费
		{Date: "2024-01-22", Reference: "FAT-012", AccountCode: "770", AccountName: "Genel Yönetim Giderleri", Description: "Elektrik", Debit: "8000"},
		{Date: "2024-01-22", Reference: "FAT-012", AccountCode: "191", AccountName: "İndirilecek KDV", Description: "KDV %18", Debit: "1440"},
		{Date: "2024-01-22", Reference: "FAT-012", AccountCode: "320", AccountName: "Satıcılar", Description: "Fatura borcu", Credit: "9440"},

		// 1月25日 大额现金提取
		{Date: "2024-01-25", Reference: "BAN-008", AccountCode: "100", AccountName: "Kasa", Description: "Nakit çekim", Debit: "250000"},
		{Date: "2024-01-25", Reference: "BAN-008", AccountCode: "102", AccountName: "Bankalar", Description: "Banka çıkışı", Credit: "250000"},

		// 1月28日 咨询服务
		{Date: "2024-01-28", Reference: "HİZ-015", AccountCode: "770", AccountName: "Genel Yönetim Giderleri", Description: "Danışmanlık", Debit: "50000"},
		{Date: "2024-01-28", Reference: "HİZ-015", AccountCode: "191", AccountName: "İndirilecek KDV", Description: "KDV %18", Debit: "9000"},
		{Date: "2024-01-28", Reference: "HİZ-015", AccountCode: "360", AccountName: "Ödenecek Vergi ve Fonlar", Description: "Stopaj %10", Credit: "5000"},
		{Date: "2024-01-28", Reference: "HİZ-015", AccountCode: "320", AccountName: "Satıcılar", Description: "Borç", Credit: "54000"},

		// 1月30日 大额现金付款
		{Date: "2024-01-30", Reference: "CEK-005", AccountCode: "770", AccountName: "Genel Yönetim Giderleri", Description: "Ödeme", Debit: "300000"},
		{Date: "2024-01-30", Reference: "CEK-005", AccountCode: "100", AccountName: "Kasa", Description: "Nakit çıkış", Credit: "300000"},

		// 2月1日 出口收入
		{Date: "2024-02-01", Reference: "İHR-002", AccountCode: "102", AccountName: "Bankalar", Description: "Döviz giriş", Debit: "200000"},
		{Date: "2024-02-01", Reference: "İHR-002", AccountCode: "601", AccountName: "Yurt Dışı Satışlar", Description: "İhracat", Credit: "200000"},

		// 2月5日 餐卡充值
		{Date: "2024-02-05", Reference: "PER-018", AccountCode: "335", AccountName: "Personele Borçlar", Description: "Yemek kartı", Debit: "15000"},
		{Date: "2024-02-05", Reference: "PER-018", AccountCode: "102", AccountName: "Bankalar", Description: "Ödeme", Credit: "15000"},

		// 2月8日 股东还款（部分）
		{Date: "2024-02-08", Reference: "ORT-002", AccountCode: "102", AccountName: "Bankalar", Description: "Ortak tahsilatı", Debit: "50000"},
		{Date: "2024-02-08", Reference: "ORT-002", AccountCode: "131", AccountName: "Ortaklardan Alacaklar", Description: "Borç tahsilatı", Credit: "50000"},

		// 2月10日 赊销
		{Date: "2024-02-10", Reference: "SAT-089", AccountCode: "120", AccountName: "Alıcılar", Description: "Vadeli satış", Debit: "118000"},
		{Date: "2024-02-10", Reference: "SAT-089", AccountCode: "600", AccountName: "Yurt İçi Satışlar", Description: "Satış", Credit: "100000"},
		{Date: "2024-02-10", Reference: "SAT-089", AccountCode: "391", AccountName: "Hesaplanan KDV", Description: "KDV", Credit: "18000"},
	}
}
