package config

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Load", func() {
	BeforeEach(func() {
		GinkgoT().Setenv("JOYWORK_ENV", "test")
		GinkgoT().Setenv("PLATFORM_SUPPORT_COMPANY_IDS", "")
	})

	It("applies defaults for the server", func() {
		cfg, err := Load(ServiceTypeServer)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Port).To(Equal("8080"))
		Expect(cfg.NodeID).To(Equal(int64(1)))
		Expect(cfg.Notification.Stream).To(Equal("joywork_notifications"))
		Expect(cfg.TraceHeaderName).To(Equal("X-Trace-Id"))
		Expect(cfg.Ticket.PlatformSupportCompanyIDs).To(BeEmpty())
	})

	It("uses a distinct snowflake node for the worker", func() {
		cfg, err := Load(ServiceTypeWorker)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.NodeID).To(Equal(int64(2)))
	})

	It("parses platform support company ids", func() {
		GinkgoT().Setenv("PLATFORM_SUPPORT_COMPANY_IDS", "11, 42 ,")
		cfg, err := Load(ServiceTypeServer)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Ticket.PlatformSupportCompanyIDs).To(Equal([]int64{11, 42}))
	})

	It("rejects malformed platform support ids", func() {
		GinkgoT().Setenv("PLATFORM_SUPPORT_COMPANY_IDS", "11,abc")
		_, err := Load(ServiceTypeServer)
		Expect(err).To(MatchError(ContainSubstring("abc")))
	})

	It("requires SMTP for the production worker", func() {
		GinkgoT().Setenv("JOYWORK_ENV", "production")
		GinkgoT().Setenv("SMTP_ADDR", "")
		_, err := Load(ServiceTypeWorker)
		Expect(err).To(HaveOccurred())
	})

	It("splits CORS origins", func() {
		GinkgoT().Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
		cfg, err := Load(ServiceTypeServer)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.CORSOrigins).To(ConsistOf("https://a.example", "https://b.example"))
	})
})
